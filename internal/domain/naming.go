package domain

import (
	"strings"
	"time"
)

const (
	unnamedSurvey   = "sans-nom"
	unnumberedSite  = "sans-numero"
	listFilePrefix  = "fiches"
	timestampLayout = "2006-01-02-15-04"
)

var filenameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SurveyFilename is the extension-less output name of a single-survey export:
// {type prefix}-{survey name or "sans-nom"}-{yyyy-MM-dd-HH-mm}.
// The timestamp is taken from the package clock in loc.
func SurveyFilename(s Survey, loc *time.Location) string {
	name := ""
	if s.Specific != nil {
		name = strings.TrimSpace(s.Specific.SurveyName())
	}
	if name == "" {
		name = unnamedSurvey
	}
	if loc == nil {
		loc = time.UTC
	}
	stamp := clock.Now().In(loc).Format(timestampLayout)
	return s.Type.FilePrefix() + "-" + sanitizeFilename(name) + "-" + stamp
}

// ListFilename is the extension-less output name of a site list export:
// fiches-{project number or "sans-numero"}.
func ListFilename(site Site) string {
	number := strings.TrimSpace(site.ProjectNumber)
	if number == "" {
		number = unnumberedSite
	}
	return listFilePrefix + "-" + sanitizeFilename(number)
}

func sanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
