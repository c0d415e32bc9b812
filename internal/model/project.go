package model

// Project represents a row in the `projects` table. A project is a
// user-curated collection of car parts; ownership is recorded in the
// users_project association table rather than on the row itself so
// that a project can be shared by several users.
//
// Fields:
//  ID          – surrogate primary key, assigned on insert.
//  Name        – project title.
//  Description – free-form description text.
type Project struct {
	ID          uint64 // projects.project_id
	Name        string // projects.name
	Description string // projects.description
}
