package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Movie is a film the cinema can schedule.
//
// Fields:
//  ID             – backend identifier.
//  Title          – display title.
//  Genre          – comma separated list of genres.
//  Duration       – running time in minutes.
//  Classification – age rating (A, 7, 12, 15, 18, X).
//  Format         – projection format (2D, 3D, IMAX, 4DX).
type Movie struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Genre          string `json:"genre"`
	Duration       int    `json:"duration"`
	Classification string `json:"classification"`
	Format         string `json:"format"`
}

// MovieForm is the payload for creating or updating a movie.
type MovieForm struct {
	Title          string `json:"title"`
	Genre          string `json:"genre"`
	Duration       int    `json:"duration"`
	Classification string `json:"classification"`
	Format         string `json:"format"`
}

// Option is a value/label pair offered by a select field.
type Option struct {
	Value string
	Label string
}

// Classifications lists the accepted age ratings.
var Classifications = []Option{
	{Value: "A", Label: "A - Suitable for all audiences"},
	{Value: "7", Label: "7 - Ages 7 and over"},
	{Value: "12", Label: "12 - Ages 12 and over"},
	{Value: "15", Label: "15 - Ages 15 and over"},
	{Value: "18", Label: "18 - Ages 18 and over"},
	{Value: "X", Label: "X - Adults only"},
}

// Formats lists the accepted projection formats.
var Formats = []Option{
	{Value: "2D", Label: "2D"},
	{Value: "3D", Label: "3D"},
	{Value: "IMAX", Label: "IMAX"},
	{Value: "4DX", Label: "4DX"},
}

// HasOption reports whether value is one of the options.
func HasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Genres splits the comma separated genre field, trimming and capitalising
// each entry. Empty entries are dropped.
func (m Movie) Genres() []string {
	var out []string
	for _, g := range strings.Split(m.Genre, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(g)
		out = append(out, string(unicode.ToUpper(r))+g[size:])
	}
	return out
}

// GenreLine joins the genres for display ("Drama - Comedy").
func (m Movie) GenreLine() string {
	return strings.Join(m.Genres(), " - ")
}
