// Package faq answers common HR questions from a static registry so they
// never reach the model.
package faq

import "regexp"

type entry struct {
	patterns []*regexp.Regexp
	answer   string
}

// entries are tested in order; within an entry the first matching pattern wins.
var entries = []entry{
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bleave policy\b`),
			regexp.MustCompile(`(?i)\bhow many leaves\b`),
			regexp.MustCompile(`(?i)\bleave entitlement\b`),
		},
		answer: "**Leave Policy:**\n" +
			"- **Casual Leave:** 12 days/year\n" +
			"- **Sick Leave:** 10 days/year\n" +
			"- **Earned Leave:** 15 days/year\n\n" +
			"Unused earned leave can be carried forward (max 30 days). " +
			"Casual leaves cannot be carried forward.",
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bcompany holidays\b`),
			regexp.MustCompile(`(?i)\bpublic holidays\b`),
			regexp.MustCompile(`(?i)\bholiday list\b`),
		},
		answer: "**Company Holidays 2026:**\n" +
			"- Jan 26 — Republic Day\n" +
			"- Mar 14 — Holi\n" +
			"- Apr 14 — Ambedkar Jayanti\n" +
			"- May 1 — May Day\n" +
			"- Aug 15 — Independence Day\n" +
			"- Oct 2 — Gandhi Jayanti\n" +
			"- Oct 20 — Dussehra\n" +
			"- Nov 9 — Diwali\n" +
			"- Dec 25 — Christmas",
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bworking hours\b`),
			regexp.MustCompile(`(?i)\boffice timings?\b`),
			regexp.MustCompile(`(?i)\bwork schedule\b`),
		},
		answer: "**Working Hours:** 9:00 AM to 6:00 PM (Mon-Fri)\n" +
			"**Lunch Break:** 1:00 PM to 2:00 PM\n" +
			"Flexible timing available with manager approval.",
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bhelp\b`),
			regexp.MustCompile(`(?i)\bwhat can you do\b`),
			regexp.MustCompile(`(?i)\bcapabilities\b`),
		},
		answer: "I'm your **HRMS Agent**. I can help you with:\n" +
			"- 🔍 Employee lookup (by code or name)\n" +
			"- 📋 Leave management (apply, status, approve/reject)\n" +
			"- ⏰ Attendance records\n" +
			"- 💰 Payroll & salary slips\n" +
			"- 📊 Company statistics\n" +
			"- ➕ Add/update employees (HR admin only)\n" +
			"- 🚪 Resignation management (HR admin only)\n" +
			"- 👥 Role management (super admin only)\n\n" +
			"Just ask in plain English!",
	},
}

// Match returns the canned answer for the first registry entry whose
// patterns match the query. The second return is false when nothing matches.
func Match(query string) (string, bool) {
	for _, e := range entries {
		for _, p := range e.patterns {
			if p.MatchString(query) {
				return e.answer, true
			}
		}
	}
	return "", false
}
