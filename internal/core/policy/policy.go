// Package policy decides whether a principal may act on a resource. All
// predicates are pure and take the resource's relevant owner ids explicitly.
package policy

import "tasktracker/internal/core/domain"

// CanModify reports whether p is a manager or the resource owner. A nil owner
// means nobody owns the resource, so only managers may modify it.
func CanModify(p domain.Principal, ownerID *uint64) bool {
	if p.IsManager() {
		return true
	}
	return ownerID != nil && *ownerID == p.UserID
}

// CanEditTask covers editing, moving, subtask changes and task file uploads.
func CanEditTask(p domain.Principal, task domain.Task) bool {
	return CanModify(p, task.AssigneeID)
}

func CanCreateTask(p domain.Principal) bool {
	return p.IsManager()
}

func CanDeleteTask(p domain.Principal) bool {
	return p.IsManager()
}

func CanManageProjects(p domain.Principal) bool {
	return p.IsManager()
}

func CanManageUsers(p domain.Principal) bool {
	return p.IsManager()
}

func CanViewMemberStats(p domain.Principal) bool {
	return p.IsManager()
}

func CanDeleteComment(p domain.Principal, comment domain.Comment) bool {
	return CanModify(p, &comment.UserID)
}

// CanDeleteTaskFile allows the uploader and the task's current assignee.
func CanDeleteTaskFile(p domain.Principal, file domain.File, task domain.Task) bool {
	return CanModify(p, &file.UserID) || CanModify(p, task.AssigneeID)
}

func CanManageProjectFiles(p domain.Principal) bool {
	return p.IsManager()
}

// CanViewUser allows managers to see any account and members their own.
func CanViewUser(p domain.Principal, userID uint64) bool {
	return CanModify(p, &userID)
}

// Authorize turns a policy decision into an error.
func Authorize(allowed bool) error {
	if allowed {
		return nil
	}
	return domain.ErrUnauthorized
}
