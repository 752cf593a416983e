package models

import "strings"

// Allowed values for the four option fields. Theme input is matched
// case-insensitively and stored lowercase; the other three are exact.
const (
	LanguageSK = "SK"
	LanguageEN = "EN"

	ThemeLight = "light"
	ThemeDark  = "dark"

	TaskFilterAll = "all"

	TaskSortNone = "none"
)

// ValidLanguage reports whether v is an allowed language code.
func ValidLanguage(v string) bool {
	return v == LanguageSK || v == LanguageEN
}

// ValidTheme reports whether v is an allowed theme, ignoring case.
func ValidTheme(v string) bool {
	switch strings.ToLower(v) {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// ValidTaskFilter reports whether v is an allowed task list filter.
func ValidTaskFilter(v string) bool {
	switch v {
	case TaskFilterAll, string(TaskStatusPending), string(TaskStatusInProgress), string(TaskStatusCompleted):
		return true
	}
	return false
}

// ValidTaskSort reports whether v is an allowed task sort key.
func ValidTaskSort(v string) bool {
	switch v {
	case TaskSortNone,
		"priority_asc", "priority_desc",
		"title_asc", "title_desc",
		"deadline_asc", "deadline_desc":
		return true
	}
	return false
}

// Option holds per-user UI preferences. Exactly one row exists per user; it
// is created with defaults the first time the options endpoint is read.
type Option struct {
	Base
	UserID     uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Language   string `gorm:"size:2;not null;default:SK" json:"language"`
	Theme      string `gorm:"size:10;not null;default:light" json:"theme"`
	TaskFilter string `gorm:"size:20;not null;default:all" json:"taskFilter"`
	TaskSort   string `gorm:"size:20;not null;default:none" json:"taskSort"`
}

// DefaultOption returns the option row created on first access for a user.
func DefaultOption(userID uint) *Option {
	return &Option{
		UserID:     userID,
		Language:   LanguageSK,
		Theme:      ThemeLight,
		TaskFilter: TaskFilterAll,
		TaskSort:   TaskSortNone,
	}
}
