package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"campus/contexts/learning/classroom-service/domain/entities"
)

// Store is an in-memory adapter implementing the classroom-service
// repositories for local runtime and tests. All roster mutations run under
// one mutex, which gives the same check-then-write atomicity the Postgres
// adapter gets from its constraint-guarded statements.
type Store struct {
	mu          sync.RWMutex
	classrooms  map[string]entities.Classroom
	tasks       map[string]entities.Task
	submissions map[string]entities.Submission
	materials   map[string]entities.Material
	sequence    uint64
}

func NewStore() *Store {
	return &Store{
		classrooms:  make(map[string]entities.Classroom),
		tasks:       make(map[string]entities.Task),
		submissions: make(map[string]entities.Submission),
		materials:   make(map[string]entities.Material),
	}
}

func (s *Store) CreateClassroom(_ context.Context, classroom entities.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classrooms[classroom.ID] = classroom
	return nil
}

func (s *Store) GetClassroom(_ context.Context, classroomID string) (entities.Classroom, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classroom, ok := s.classrooms[classroomID]
	return classroom, ok, nil
}

func (s *Store) ListClassrooms(_ context.Context) ([]entities.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectClassrooms(func(entities.Classroom) bool { return true }), nil
}

func (s *Store) ListClassroomsByProfessor(_ context.Context, professorID string) ([]entities.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectClassrooms(func(c entities.Classroom) bool { return c.ProfessorID == professorID }), nil
}

func (s *Store) ListClassroomsByStudent(_ context.Context, studentID string) ([]entities.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectClassrooms(func(c entities.Classroom) bool {
		for _, id := range c.StudentIDs {
			if id == studentID {
				return true
			}
		}
		return false
	}), nil
}

func (s *Store) DeleteClassroom(_ context.Context, classroomID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.classrooms[classroomID]
	delete(s.classrooms, classroomID)
	return ok, nil
}

func (s *Store) AddStudent(_ context.Context, classroomID string, studentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classroom, ok := s.classrooms[classroomID]
	if !ok {
		return false, nil
	}
	for _, id := range classroom.StudentIDs {
		if id == studentID {
			return false, nil
		}
	}
	classroom.StudentIDs = append(append([]string(nil), classroom.StudentIDs...), studentID)
	s.classrooms[classroomID] = classroom
	return true, nil
}

func (s *Store) RemoveStudent(_ context.Context, classroomID string, studentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classroom, ok := s.classrooms[classroomID]
	if !ok {
		return false, nil
	}
	kept := classroom.StudentIDs[:0:0]
	removed := false
	for _, id := range classroom.StudentIDs {
		if id == studentID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if removed {
		classroom.StudentIDs = kept
		s.classrooms[classroomID] = classroom
	}
	return removed, nil
}

func (s *Store) RemoveStudentFromAll(_ context.Context, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, classroom := range s.classrooms {
		kept := classroom.StudentIDs[:0:0]
		changed := false
		for _, member := range classroom.StudentIDs {
			if member == studentID {
				changed = true
				continue
			}
			kept = append(kept, member)
		}
		if changed {
			classroom.StudentIDs = kept
			s.classrooms[id] = classroom
		}
	}
	return nil
}

func (s *Store) CreateTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

func (s *Store) GetTask(_ context.Context, taskID string) (entities.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	return task, ok, nil
}

func (s *Store) ListTasksByClassroom(_ context.Context, classroomID string) ([]entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []entities.Task
	for _, task := range s.tasks {
		if task.ClassroomID == classroomID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *Store) UpdateTask(_ context.Context, task entities.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return false, nil
	}
	s.tasks[task.ID] = task
	return true, nil
}

func (s *Store) DeleteTask(_ context.Context, taskID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[taskID]
	delete(s.tasks, taskID)
	return ok, nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.submissions {
		if existing.TaskID == submission.TaskID && existing.StudentID == submission.StudentID {
			return false, nil
		}
	}
	s.submissions[submission.ID] = submission
	return true, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[submissionID]
	return submission, ok, nil
}

func (s *Store) ListSubmissionsByTask(_ context.Context, taskID string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectSubmissions(func(sub entities.Submission) bool { return sub.TaskID == taskID }), nil
}

func (s *Store) ListSubmissionsByStudent(_ context.Context, studentID string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectSubmissions(func(sub entities.Submission) bool { return sub.StudentID == studentID }), nil
}

func (s *Store) SetGrade(_ context.Context, submissionID string, grade string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submission, ok := s.submissions[submissionID]
	if !ok {
		return false, nil
	}
	submission.Grade = &grade
	s.submissions[submissionID] = submission
	return true, nil
}

func (s *Store) DeleteSubmission(_ context.Context, submissionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.submissions[submissionID]
	delete(s.submissions, submissionID)
	return ok, nil
}

func (s *Store) CreateMaterial(_ context.Context, material entities.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[material.ID] = material
	return nil
}

func (s *Store) GetMaterial(_ context.Context, materialID string) (entities.Material, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	material, ok := s.materials[materialID]
	return material, ok, nil
}

func (s *Store) ListMaterialsByClassroom(_ context.Context, classroomID string) ([]entities.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var materials []entities.Material
	for _, material := range s.materials {
		if material.ClassroomID == classroomID {
			materials = append(materials, material)
		}
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].ID < materials[j].ID })
	return materials, nil
}

func (s *Store) DeleteMaterial(_ context.Context, materialID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.materials[materialID]
	delete(s.materials, materialID)
	return ok, nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("res-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) collectClassrooms(keep func(entities.Classroom) bool) []entities.Classroom {
	var classrooms []entities.Classroom
	for _, classroom := range s.classrooms {
		if keep(classroom) {
			classrooms = append(classrooms, classroom)
		}
	}
	sort.Slice(classrooms, func(i, j int) bool { return classrooms[i].ID < classrooms[j].ID })
	return classrooms
}

func (s *Store) collectSubmissions(keep func(entities.Submission) bool) []entities.Submission {
	var submissions []entities.Submission
	for _, submission := range s.submissions {
		if keep(submission) {
			submissions = append(submissions, submission)
		}
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].ID < submissions[j].ID })
	return submissions
}
