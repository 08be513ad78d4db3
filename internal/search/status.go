// Package search pages through the social-media search API and caches the
// statuses it finds.
package search

// Status is one search result. Only the fields the collector reads are
// decoded.
type Status struct {
	ID              int64    `json:"id"`
	Text            string   `json:"text"`
	RetweetCount    int      `json:"retweet_count"`
	RetweetedStatus *Status  `json:"retweeted_status,omitempty"`
	Entities        Entities `json:"entities"`
	User            User     `json:"user"`
}

type Entities struct {
	URLs []URL `json:"urls"`
}

type URL struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
}

type User struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

// IsRetweet reports whether the status reposts another one.
func (s *Status) IsRetweet() bool {
	return s.RetweetedStatus != nil
}

// ExpandedURLs lists the expanded link targets, skipping empty entries.
func (s *Status) ExpandedURLs() []string {
	out := make([]string, 0, len(s.Entities.URLs))
	for _, u := range s.Entities.URLs {
		switch {
		case u.ExpandedURL != "":
			out = append(out, u.ExpandedURL)
		case u.URL != "":
			out = append(out, u.URL)
		}
	}
	return out
}

// Interesting keeps original statuses that were reshared more than
// minRetweets times.
func Interesting(s *Status, minRetweets int) bool {
	return s.RetweetCount > minRetweets && !s.IsRetweet()
}
