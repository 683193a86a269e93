package services

import (
	"context"
	"regexp"
	"strings"
)

// Rule-based chat: lower-case the message, walk an ordered list of keyword
// predicates, answer with the first matching template.

var greeting = regexp.MustCompile(`^(hi|hello|hey|greetings)`)

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

type jobRule struct {
	match  func(msg string) bool
	answer func(j *JobContext) string
}

var jobRules = []jobRule{
	{
		match: greeting.MatchString,
		answer: func(j *JobContext) string {
			return "Hello! I'm here to help you learn about this " + j.JobTitle + " position at " + j.Company +
				". What would you like to know? You can ask about the role, location, salary, or company."
		},
	},
	{
		match: func(m string) bool {
			return strings.Contains(m, "what") && containsAny(m, "job", "role", "position", "responsibilities")
		},
		answer: func(j *JobContext) string {
			detail := "Please check the full job description for detailed information about responsibilities and requirements."
			if j.Description != "" {
				detail = truncate(j.Description, 250) + "..."
			}
			return "This is a " + j.JobTitle + " position at " + j.Company + ". " + detail
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "where", "location") },
		answer: func(j *JobContext) string {
			return "This position is located in " + j.Location + "."
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "salary", "pay", "compensation", "wage") },
		answer: func(j *JobContext) string {
			tail := ""
			if j.Salary == "Not specified" {
				tail = "Please contact the employer for specific compensation details."
			}
			return "The salary for this position is: " + j.Salary + ". " + tail
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "company", "employer", "organization") },
		answer: func(j *JobContext) string {
			tail := "Check the job listing for more details about the company."
			if j.Description != "" {
				tail = "They are looking for someone for a " + j.JobTitle + " role."
			}
			return "This position is with " + j.Company + ", located in " + j.Location + ". " + tail
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "apply", "how to", "application") },
		answer: func(j *JobContext) string {
			return "To apply for this " + j.JobTitle + " position at " + j.Company +
				", please use the apply button on the job listing page. Make sure to review the requirements before submitting your application."
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "requirement", "qualification", "skill", "experience") },
		answer: func(j *JobContext) string {
			detail := "Contact the employer for specific qualification details."
			if j.Description != "" {
				detail = truncate(j.Description, 200) + "..."
			}
			return "For detailed requirements and qualifications for the " + j.JobTitle +
				" position, please review the full job description. " + detail
		},
	},
	{
		match: func(m string) bool { return containsAny(m, "benefit", "perk", "insurance") },
		answer: func(j *JobContext) string {
			return "For information about benefits and perks for this " + j.JobTitle + " position at " + j.Company +
				", please contact the employer directly or check the complete job listing."
		},
	},
}

func jobSummary(j *JobContext) string {
	return "This is a " + j.JobTitle + " role at " + j.Company + " in " + j.Location + ". Salary: " + j.Salary +
		". Feel free to ask me specific questions about the location, salary, responsibilities, or how to apply!"
}

// RuleChatResponder answers job questions from canned templates.
type RuleChatResponder struct{}

func NewRuleChatResponder() *RuleChatResponder {
	return &RuleChatResponder{}
}

func (RuleChatResponder) Respond(_ context.Context, message string, job *JobContext) (string, error) {
	if job == nil {
		job = NewJobContext(nil)
	}
	msg := strings.ToLower(message)
	for _, r := range jobRules {
		if r.match(msg) {
			return r.answer(job), nil
		}
	}
	return jobSummary(job), nil
}
