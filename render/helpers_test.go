package render

import "github.com/charmbracelet/lipgloss"

func lipglossWidth(s string) int { return lipgloss.Width(s) }

func lipglossColor(s string) lipgloss.Color { return lipgloss.Color(s) }
