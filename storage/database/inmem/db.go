package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/client"
	"github.com/trezcool/darasa/core/employee"
	"github.com/trezcool/darasa/core/group"
	"github.com/trezcool/darasa/core/marks"
	"github.com/trezcool/darasa/core/schoolclass"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/subject"
	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user       *userTable
		student    *studentTable
		employee   *employeeTable
		subject    *subjectTable
		class      *classTable
		group      *groupTable
		client     *clientTable
		attendance *attendanceTable
		assessment *assessmentTable
		marks      *marksTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}
	employeeTable struct {
		sync.RWMutex
		table map[string]*employee.Employee
	}
	subjectTable struct {
		sync.RWMutex
		table map[string]*subject.Subject
	}
	classTable struct {
		sync.RWMutex
		table map[string]*schoolclass.Class
	}
	groupTable struct {
		sync.RWMutex
		table map[string]*group.Group
	}
	clientTable struct {
		sync.RWMutex
		table map[string]*client.Client
	}
	attendanceTable struct {
		sync.RWMutex
		table map[string]*attendance.Record
	}
	assessmentTable struct {
		sync.RWMutex
		table map[string]*assessment.Component
	}
	marksTable struct {
		sync.RWMutex
		table map[string]*marks.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		student:    &studentTable{table: make(map[string]*student.Student)},
		employee:   &employeeTable{table: make(map[string]*employee.Employee)},
		subject:    &subjectTable{table: make(map[string]*subject.Subject)},
		class:      &classTable{table: make(map[string]*schoolclass.Class)},
		group:      &groupTable{table: make(map[string]*group.Group)},
		client:     &clientTable{table: make(map[string]*client.Client)},
		attendance: &attendanceTable{table: make(map[string]*attendance.Record)},
		assessment: &assessmentTable{table: make(map[string]*assessment.Component)},
		marks:      &marksTable{table: make(map[string]*marks.Record)},
	}
	return db, nil
}
