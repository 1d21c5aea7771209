package domain

// TerminalEntry is one command of the decorative terminal script and its output.
type TerminalEntry struct {
	Cmd string `json:"cmd"`
	Out string `json:"out"`
}

// Page identifies which section of the site a request belongs to.
type Page string

const (
	PageBlog     Page = "blog"
	PageProjects Page = "projects"
	PageHub      Page = "hub"
	PageDefault  Page = "default"
)
