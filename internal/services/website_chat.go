package services

import "strings"

type siteRule struct {
	match  func(msg string) bool
	answer string
}

var siteRules = []siteRule{
	{
		match: greeting.MatchString,
		answer: "Hello! Welcome to HirelyAI. I can help you find jobs, save listings, explore our features " +
			"or get started. What would you like to know?",
	},
	{
		match: func(m string) bool {
			return containsAny(m, "search", "find") || (strings.Contains(m, "how") && strings.Contains(m, "job"))
		},
		answer: "To find jobs, browse a category on the homepage or click \"Get Your Dream Job\" and search by " +
			"title, location or keywords. Narrow the results with the filters, then open any listing for the " +
			"full description and company details.",
	},
	{
		match: func(m string) bool { return containsAny(m, "save", "bookmark", "saved jobs") },
		answer: "Click the bookmark icon on any listing to save it. Your saved jobs are listed under " +
			"\"Saved Jobs\" in the navigation menu, where you can remove them at any time. Sign in to keep " +
			"them across devices.",
	},
	{
		match: func(m string) bool { return containsAny(m, "feature", "what do you offer", "what can") },
		answer: "HirelyAI offers job search across many categories, saved jobs, an AI assistant on every " +
			"listing, location and keyword filters, and salary information where employers publish it.",
	},
	{
		match: func(m string) bool { return containsAny(m, "about", "hirely", "what is", "tell me") },
		answer: "HirelyAI is a job search platform connecting talent with opportunity. We bring together " +
			"listings from top employers, an assistant to answer your questions and simple tools to keep " +
			"track of the roles you like.",
	},
	{
		match: func(m string) bool { return containsAny(m, "start", "begin", "how to use") },
		answer: "Getting started is simple. Browse categories or search from the homepage, filter by " +
			"location, salary or keywords, open the jobs that interest you, bookmark the ones you like and " +
			"click \"Apply\" when you are ready.",
	},
	{
		match: func(m string) bool { return containsAny(m, "categor", "industry", "field") },
		answer: "Popular categories include Technology, Healthcare, Financial Services, Construction, " +
			"Engineering, Media, Education, Hotels & Tourism and Commerce. Browse them all on the homepage.",
	},
	{
		match: func(m string) bool { return containsAny(m, "apply", "application") },
		answer: "Find a job you like, read the full description, ask the assistant anything about the role, " +
			"then click \"Apply Now\". You will be taken to the employer's application page.",
	},
	{
		match: func(m string) bool { return containsAny(m, "account", "login", "register", "sign") },
		answer: "Use \"Login\" or \"Register\" in the top navigation bar. With an account your saved jobs " +
			"follow you between devices and you can manage your profile.",
	},
	{
		match: func(m string) bool { return containsAny(m, "help", "support", "contact") },
		answer: "Need help? Ask me anything here, or visit the \"Contact Us\" page to send our team a message. " +
			"Common topics are searching, saving jobs, applying and account features.",
	},
}

const siteDefault = "Thanks for your question! I can help with job search, saving jobs, our features, " +
	"getting started, job categories and applying. What would you like to know more about?"

// WebsiteChatResponder answers questions about the site itself.
type WebsiteChatResponder struct{}

func NewWebsiteChatResponder() *WebsiteChatResponder {
	return &WebsiteChatResponder{}
}

func (WebsiteChatResponder) Respond(message string) string {
	msg := strings.ToLower(message)
	for _, r := range siteRules {
		if r.match(msg) {
			return r.answer
		}
	}
	return siteDefault
}
