package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const TelegramPreview = "https://t.me/s"

type ChannelPost struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Excerpt string    `json:"excerpt"`
	Date    time.Time `json:"date"`
	Views   int       `json:"views"`
	URL     string    `json:"url"`
}

type Channel struct {
	Name        string        `json:"name"`
	Subscribers int           `json:"subscribers"`
	Posts       []ChannelPost `json:"posts"`
}

// ChannelSource yields channel posts. Implementations never fail: on any
// problem they return a Channel with no posts.
type ChannelSource interface {
	Channel(ctx context.Context) Channel
}

// TelegramScraper reads the public web preview of a channel. The markup is
// undocumented, so parsing is lenient and anything unrecognised is skipped.
type TelegramScraper struct {
	client  *http.Client
	baseURL string
	channel string
	logger  *zap.Logger
}

func NewTelegramScraper(client *http.Client, baseURL, channel string, logger *zap.Logger) *TelegramScraper {
	if baseURL == "" {
		baseURL = TelegramPreview
	}
	return &TelegramScraper{client: client, baseURL: baseURL, channel: channel, logger: logger}
}

func (s *TelegramScraper) Channel(ctx context.Context) Channel {
	ch, err := s.Fetch(ctx)
	if err != nil {
		s.logger.Warn("telegram scrape failed", zap.String("channel", s.channel), zap.Error(err))
		return Channel{Name: s.channel, Posts: []ChannelPost{}}
	}
	return ch
}

func (s *TelegramScraper) Fetch(ctx context.Context) (Channel, error) {
	endpoint := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(s.channel))
	body, err := get(ctx, s.client, endpoint, "text/html", nil)
	if err != nil {
		return Channel{}, err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Channel{}, fmt.Errorf("failed to parse preview page: %w", err)
	}
	ch := ParseChannel(doc)
	ch.Name = s.channel
	return ch, nil
}

// ParseChannel extracts posts, newest first, and the subscriber counter.
func ParseChannel(doc *html.Node) Channel {
	ch := Channel{Posts: []ChannelPost{}}

	walk(doc, func(n *html.Node) bool {
		switch {
		case hasClass(n, "tgme_channel_info_counter"):
			if typ := findClass(n, "counter_type"); typ != nil && strings.HasPrefix(textOf(typ), "subscriber") {
				if val := findClass(n, "counter_value"); val != nil {
					ch.Subscribers = ParseCount(textOf(val))
				}
			}
			return false
		case hasClass(n, "tgme_widget_message") && attr(n, "data-post") != "":
			if post, ok := parsePost(n); ok {
				ch.Posts = append(ch.Posts, post)
			}
			return false
		}
		return true
	})

	// The preview lists oldest first.
	for i, j := 0, len(ch.Posts)-1; i < j; i, j = i+1, j-1 {
		ch.Posts[i], ch.Posts[j] = ch.Posts[j], ch.Posts[i]
	}
	return ch
}

const excerptRunes = 200

func parsePost(n *html.Node) (ChannelPost, bool) {
	textNode := findClass(n, "tgme_widget_message_text")
	if textNode == nil {
		return ChannelPost{}, false
	}
	text := strings.TrimSpace(textWithBreaks(textNode))
	if text == "" {
		return ChannelPost{}, false
	}

	title, rest, _ := strings.Cut(text, "\n")
	post := ChannelPost{
		ID:      attr(n, "data-post"),
		Title:   strings.TrimSpace(title),
		Excerpt: truncate(strings.Join(strings.Fields(rest), " "), excerptRunes),
	}
	if dateLink := findClass(n, "tgme_widget_message_date"); dateLink != nil {
		post.URL = attr(dateLink, "href")
		if t := findTag(dateLink, "time"); t != nil {
			if parsed, err := time.Parse(time.RFC3339, attr(t, "datetime")); err == nil {
				post.Date = parsed
			}
		}
	}
	if views := findClass(n, "tgme_widget_message_views"); views != nil {
		post.Views = ParseCount(textOf(views))
	}
	return post, true
}

// ParseCount reads Telegram's compact counters: "845", "1.2K", "3.4M".
func ParseCount(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return 0
	}
	mult := 1.0
	switch s[len(s)-1] {
	case 'K', 'k':
		mult, s = 1e3, s[:len(s)-1]
	case 'M', 'm':
		mult, s = 1e6, s[:len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f*mult + 0.5)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}

func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func findClass(n *html.Node, class string) *html.Node {
	return findFirst(n, func(c *html.Node) bool { return hasClass(c, class) })
}

func findTag(n *html.Node, tag string) *html.Node {
	return findFirst(n, func(c *html.Node) bool { return c.Data == tag })
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}

// textWithBreaks is textOf with <br> kept as newlines.
func textWithBreaks(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
