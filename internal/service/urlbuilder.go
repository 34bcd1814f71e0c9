package service

import (
	"errors"
	"net/url"

	"linkpulse/internal/models"
)

var ErrMalformedURL = errors.New("malformed destination url")

type UTMFields struct {
	Source   *string
	Medium   *string
	Campaign *string
	Term     *string
	Content  *string
}

func UTMFromLink(link *models.Link) UTMFields {
	return UTMFields{
		Source:   link.UTMSource,
		Medium:   link.UTMMedium,
		Campaign: link.UTMCampaign,
		Term:     link.UTMTerm,
		Content:  link.UTMContent,
	}
}

// BuildTaggedURL rebuilds the destination URL with the link's utm_* query
// parameters. Existing non-utm parameters are preserved, utm_* ones are
// overwritten. Insertion order is fixed: source, medium, campaign, term,
// content.
func BuildTaggedURL(destination string, utm UTMFields) (string, error) {
	u, err := url.Parse(destination)
	if err != nil {
		return "", ErrMalformedURL
	}
	if !u.IsAbs() || u.Host == "" {
		return "", ErrMalformedURL
	}

	params := []struct {
		key   string
		value *string
	}{
		{"utm_source", utm.Source},
		{"utm_medium", utm.Medium},
		{"utm_campaign", utm.Campaign},
		{"utm_term", utm.Term},
		{"utm_content", utm.Content},
	}

	q := u.Query()
	changed := false
	for _, p := range params {
		if p.value != nil {
			q.Set(p.key, *p.value)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
