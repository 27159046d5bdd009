// Package render turns a maze and a solved path into something a person can
// look at: color classes, a styled terminal drawing, or a PNG image.
//
// The package never mutates its inputs. Transform produces a fresh class
// grid with the path painted over floor cells only, so start, exit and any
// wall on the path (there never is one) keep their own color.
//
// Color classes follow the order of the sorted maze alphabet:
//
//	0 floor ' '   silver
//	1 wall  '#'   black
//	2 exit  'E'   red
//	3 start '^'   gold
//	4 path        green
package render
