package tui

var AppVersion = "0.1.0"
