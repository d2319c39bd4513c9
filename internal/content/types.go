package content

// Stat is one headline counter.
type Stat struct {
	ID           string `json:"id" yaml:"id"`
	Label        string `json:"label" yaml:"label"`
	Value        int    `json:"value" yaml:"value"`
	Icon         string `json:"icon" yaml:"icon"`
	DisplayValue string `json:"displayValue,omitempty" yaml:"displayValue"`
}

type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	Stars       int      `json:"stars" yaml:"stars"`
	Language    string   `json:"language" yaml:"language"`
	URL         string   `json:"url" yaml:"url"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// Skill entries double as tags, theses and value statements, told apart by
// Category.
type Skill struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Proficiency int    `json:"proficiency" yaml:"proficiency"`
	Category    string `json:"category" yaml:"category"`
}

type Video struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`
	URL       string `json:"url" yaml:"url"`
	Date      string `json:"date" yaml:"date"`
	Views     int    `json:"views" yaml:"views"`
}

type Post struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Excerpt string `json:"excerpt" yaml:"excerpt"`
	Date    string `json:"date" yaml:"date"`
	Views   int    `json:"views" yaml:"views"`
	URL     string `json:"url" yaml:"url"`
}

type Article struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url" yaml:"url"`
	Date     string `json:"date" yaml:"date"`
	Platform string `json:"platform" yaml:"platform"`
	Badge    string `json:"badge,omitempty" yaml:"badge"`
}

// ContributionDay is one day of activity. Date is YYYY-MM-DD. A Count of -1
// marks a grid placeholder, never real data.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type GitHubActivity struct {
	TotalCommits      int               `json:"totalCommits" yaml:"totalCommits"`
	TotalPRs          int               `json:"totalPRs" yaml:"totalPRs"`
	TotalIssues       int               `json:"totalIssues" yaml:"totalIssues"`
	ContributionGraph []ContributionDay `json:"contributionGraph" yaml:"-"`
}

type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Headline string `json:"headline" yaml:"headline"`
	Avatar   string `json:"avatar" yaml:"avatar"`
	Bio      string `json:"bio" yaml:"bio"`
	Links    []Link `json:"links" yaml:"links"`
}
