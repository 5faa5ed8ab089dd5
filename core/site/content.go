// Package site holds the landing page content.
package site

import "time"

type (
	Hero struct {
		Title    string `json:"title"`
		Tagline  string `json:"tagline"`
		Subtitle string `json:"subtitle"`
	}

	Section struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}

	Program struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	Stat struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}

	Testimonial struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Quote string `json:"quote"`
	}

	TeamMember struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}

	ContactInfo struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
	}

	Content struct {
		Hero         Hero          `json:"hero"`
		About        Section       `json:"about"`
		Programs     []Program     `json:"programs"`
		Stats        []Stat        `json:"stats"`
		Testimonials []Testimonial `json:"testimonials"`
		Team         []TeamMember  `json:"team"`
		Contact      ContactInfo   `json:"contact"`
	}
)

var content = Content{
	Hero: Hero{
		Title:    "Welcome to elegantUX",
		Tagline:  "Minimalist Design",
		Subtitle: "We believe in data-driven learning, where every student's progress is tracked, understood and supported.",
	},
	About: Section{
		Title: "About Us",
		Text:  "We build tools that help schools understand how every learner progresses, and give educators the insight to act on it.",
	},
	Programs: []Program{
		{Title: "AI-Powered Student Analytics", Description: "Understand every learner through progress tracking and early insight."},
		{Title: "Collaborative Learning Tools", Description: "Bring educators, therapists and families around the same plan."},
		{Title: "Adaptive Learning Pathways", Description: "Personalised pathways that adjust to each student's pace."},
		{Title: "Education Data Management", Description: "Keep assessments, reports and records organised and secure."},
	},
	Stats: []Stat{
		{Value: "40%", Label: "Improvement in Student Performance"},
		{Value: "200+", Label: "Schools Benefited"},
		{Value: "5000+", Label: "Students Tracked & Supported"},
	},
	Testimonials: []Testimonial{
		{Name: "Sarah Johnson", Role: "Principal, Lincoln High School", Quote: "The analytics changed how our staff plans support for every student."},
		{Name: "David Chen", Role: "Education Director, Future Academy", Quote: "Teachers finally see progress in one place, and parents see it too."},
		{Name: "Amelia Rodriguez", Role: "Technology Coordinator, Westview College", Quote: "Setup was painless and the team was there for us at every step."},
	},
	Team: []TeamMember{
		{Name: "Alexandra Chen", Role: "CEO & Design Lead"},
		{Name: "Michael Rivera", Role: "CTO & AI Specialist"},
		{Name: "Sophia Johnson", Role: "Education Director"},
		{Name: "James Wilson", Role: "Data Science Lead"},
	},
	Contact: ContactInfo{
		Address: "1234 Design Avenue, Suite 567, San Francisco, CA 94107",
		Phone:   "+1 (555) 123-4567",
		Email:   "contact@elegantux.com",
	},
}

// Landing returns the landing page content.
func Landing() Content { return content }

// ActiveTestimonial returns the index of the testimonial shown at now,
// rotating every interval over n testimonials.
func ActiveTestimonial(now time.Time, interval time.Duration, n int) int {
	if n <= 0 {
		return -1
	}
	secs := int64(interval / time.Second)
	if secs <= 0 {
		secs = 1
	}
	idx := (now.Unix() / secs) % int64(n)
	if idx < 0 {
		idx += int64(n)
	}
	return int(idx)
}
