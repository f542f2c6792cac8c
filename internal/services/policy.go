// Package services implements the business logic: authentication, the user
// directory, and post CRUD. Access decisions live in pure predicates in this
// file, composed by the services, so each rule is testable without a database.
package services

import (
	"github.com/thirteenmd/back-end-task/internal/models"
)

// IsPostVisibleTo is the row-level visibility rule for post listings: every
// public post, plus hidden posts authored by the caller. Administrators get
// no extra visibility. The FindVisible query implements exactly this rule.
func IsPostVisibleTo(user *models.User, post *models.Post) bool {
	if !post.IsHidden {
		return true
	}
	return user != nil && post.AuthorID == user.ID
}

// CanUpdatePost reports whether user may edit post. Only the author may
// update; administrators are not exempt.
func CanUpdatePost(user *models.User, post *models.Post) bool {
	return user != nil && post.AuthorID == user.ID
}

// CanDeletePost reports whether user may delete post. The author may delete
// unconditionally; an administrator may delete someone else's post only while
// it is not hidden. A hidden post is deletable by its author alone.
func CanDeletePost(user *models.User, post *models.Post) bool {
	if user == nil {
		return false
	}
	if post.AuthorID == user.ID {
		return true
	}
	return user.IsAdmin() && !post.IsHidden
}

// FilterUsersForCaller applies the directory policy: an administrator sees
// id, name and email for every user; anyone else sees only name and email,
// and administrators are filtered out entirely.
func FilterUsersForCaller(caller *models.User, users []models.User) []models.UserListItem {
	items := make([]models.UserListItem, 0, len(users))

	if caller.IsAdmin() {
		for _, u := range users {
			items = append(items, models.UserListItem{ID: u.ID, Name: u.Name, Email: u.Email})
		}
		return items
	}

	for _, u := range users {
		if u.Role == models.RoleAdmin {
			continue
		}
		items = append(items, models.UserListItem{Name: u.Name, Email: u.Email})
	}
	return items
}
