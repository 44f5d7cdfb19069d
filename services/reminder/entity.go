package reminder

import (
	"time"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

type Kind string

const (
	KindProject Kind = "project"
	KindTask    Kind = "task"
)

// Kinds lists every deadline-bearing entity kind a cycle scans.
var Kinds = []Kind{KindProject, KindTask}

// Entity is the scanner's uniform view of a deadline-bearing record. Exactly
// one of Project/Task is set, matching Kind.
type Entity struct {
	Kind    Kind
	ID      string
	Name    string
	Due     time.Time
	Project *models.Project
	Task    *models.Task
}
