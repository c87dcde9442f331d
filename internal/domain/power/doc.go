// Package power sequences the full-screen boot, standby and reboot
// phases of the desktop. Each phase change is a cancellable delayed
// task; starting a new transition revokes whatever was pending.
package power
