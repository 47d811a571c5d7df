package pages

import "time"

// Flash is a message that disappears on its own after a fixed lifetime.
type Flash struct {
	text    string
	expires time.Time
}

// Set replaces the message. It stays visible until now+ttl.
func (f *Flash) Set(text string, now time.Time, ttl time.Duration) {
	f.text = text
	f.expires = now.Add(ttl)
}

// Clear hides the message immediately.
func (f *Flash) Clear() {
	f.text = ""
	f.expires = time.Time{}
}

// Text returns the message if it has not expired at now, else "".
func (f Flash) Text(now time.Time) string {
	if f.text == "" || !now.Before(f.expires) {
		return ""
	}
	return f.text
}
