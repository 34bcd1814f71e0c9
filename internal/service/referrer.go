package service

import "strings"

// refererRules maps known domains to display labels. Matching is
// case-sensitive substring containment, first rule wins.
var refererRules = []struct {
	label   string
	needles []string
}{
	{"Google", []string{"google"}},
	{"Facebook", []string{"facebook", "fb."}},
	{"Twitter/X", []string{"twitter", "t.co"}},
	{"LinkedIn", []string{"linkedin"}},
	{"Instagram", []string{"instagram"}},
	{"YouTube", []string{"youtube"}},
	{"TikTok", []string{"tiktok"}},
	{"Reddit", []string{"reddit"}},
}

const (
	refererDirect = "Direct"
	refererOther  = "Other"
)

// ClassifyReferer maps a raw referer string onto a fixed label set.
func ClassifyReferer(referer string) string {
	if referer == "" {
		return refererDirect
	}
	for _, rule := range refererRules {
		for _, needle := range rule.needles {
			if strings.Contains(referer, needle) {
				return rule.label
			}
		}
	}
	return refererOther
}
