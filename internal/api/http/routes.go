package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every shell endpoint on r
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/shell", h.Shell)

	// App lifecycle
	apps := r.Group("/apps")
	apps.GET("", h.ListApps)
	apps.GET("/:id", h.GetApp)
	apps.POST("/:id/open", h.OpenApp)
	apps.POST("/:id/close", h.CloseApp)
	apps.POST("/:id/minimize", h.MinimizeApp)

	// Window management
	windows := r.Group("/windows")
	windows.POST("/:id/open", h.OpenWindow)
	windows.POST("/:id/close", h.CloseWindow)
	windows.POST("/:id/minimize", h.MinimizeWindow)
	windows.POST("/:id/focus", h.FocusWindow)
	windows.POST("/:id/fullscreen", h.ToggleFullscreen)
	windows.POST("/:id/drag", h.DragWindow)

	// Taskbar and dock
	r.GET("/taskbar", h.Taskbar)
	r.POST("/taskbar/:window/click", h.ClickTaskbar)
	r.GET("/dock/recent", h.Recent)
	r.POST("/dock/recent/:app/click", h.ClickRecent)

	// Menus and touch
	r.POST("/context-menu", h.ShowContextMenu)
	r.POST("/context-menu/action", h.ContextAction)
	r.POST("/context-menu/dismiss", h.DismissContextMenu)
	r.POST("/touch/start", h.TouchStart)
	r.POST("/touch/move", h.TouchMove)
	r.POST("/touch/end", h.TouchEnd)
	r.POST("/start-menu/toggle", h.ToggleStartMenu)
	r.POST("/start-menu/launch/:window", h.LaunchFromStart)
	r.POST("/desktop/click", h.ClickDesktop)
	r.POST("/viewport", h.SetViewport)

	// Power screens
	r.GET("/power", h.Power)
	r.POST("/power/standby", h.Standby)
	r.POST("/power/wake", h.Wake)
	r.POST("/power/reboot", h.Reboot)

	r.GET("/wallpaper", h.Wallpaper)
	r.GET("/catalog", h.Catalog)

	// Bundled apps
	r.POST("/terminal/exec", h.Exec)
	r.GET("/terminal", h.Terminal)
	r.GET("/files", h.Folders)
	r.GET("/files/search", h.SearchFiles)
	r.GET("/files/:folder", h.ListFolder)
	r.GET("/music", h.Music)
	r.POST("/music/toggle", h.ToggleMusic)
	r.POST("/browser/navigate", h.Navigate)
}
