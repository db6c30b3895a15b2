package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus/contexts/learning/classroom-service/domain/entities"
)

type classroomModel struct {
	ClassroomID string    `gorm:"column:classroom_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	ProfessorID string    `gorm:"column:professor_id;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (classroomModel) TableName() string { return "classrooms" }

type enrollmentModel struct {
	ClassroomID string `gorm:"column:classroom_id;primaryKey"`
	StudentID   string `gorm:"column:student_id;primaryKey;index"`
}

func (enrollmentModel) TableName() string { return "classroom_students" }

type taskModel struct {
	TaskID      string    `gorm:"column:task_id;primaryKey"`
	ClassroomID string    `gorm:"column:classroom_id;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	DueDate     time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (taskModel) TableName() string { return "tasks" }

func (m taskModel) toEntity() entities.Task {
	return entities.Task{
		ID:          m.TaskID,
		ClassroomID: m.ClassroomID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
	}
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	TaskID       string    `gorm:"column:task_id;uniqueIndex:idx_submission_task_student"`
	StudentID    string    `gorm:"column:student_id;uniqueIndex:idx_submission_task_student;index"`
	FileRef      string    `gorm:"column:file_ref"`
	FileName     string    `gorm:"column:file_name"`
	SubmittedAt  time.Time `gorm:"column:submitted_at"`
	Grade        *string   `gorm:"column:grade"`
}

func (submissionModel) TableName() string { return "submissions" }

func (m submissionModel) toEntity() entities.Submission {
	return entities.Submission{
		ID:          m.SubmissionID,
		TaskID:      m.TaskID,
		StudentID:   m.StudentID,
		FileRef:     m.FileRef,
		FileName:    m.FileName,
		SubmittedAt: m.SubmittedAt,
		Grade:       m.Grade,
	}
}

type materialModel struct {
	MaterialID  string    `gorm:"column:material_id;primaryKey"`
	ClassroomID string    `gorm:"column:classroom_id;index"`
	ProfessorID string    `gorm:"column:professor_id"`
	Title       string    `gorm:"column:title"`
	FileRef     string    `gorm:"column:file_ref"`
	FileName    string    `gorm:"column:file_name"`
	UploadedAt  time.Time `gorm:"column:uploaded_at"`
}

func (materialModel) TableName() string { return "materials" }

func (m materialModel) toEntity() entities.Material {
	return entities.Material{
		ID:          m.MaterialID,
		ClassroomID: m.ClassroomID,
		ProfessorID: m.ProfessorID,
		Title:       m.Title,
		FileRef:     m.FileRef,
		FileName:    m.FileName,
		UploadedAt:  m.UploadedAt,
	}
}

// Repository is the Postgres classroom-service adapter.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateClassroom(ctx context.Context, classroom entities.Classroom) error {
	row := classroomModel{
		ClassroomID: classroom.ID,
		Name:        classroom.Name,
		ProfessorID: classroom.ProfessorID,
		CreatedAt:   classroom.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetClassroom(ctx context.Context, classroomID string) (entities.Classroom, bool, error) {
	var row classroomModel
	err := r.db.WithContext(ctx).Where("classroom_id = ?", classroomID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Classroom{}, false, nil
		}
		return entities.Classroom{}, false, err
	}
	classroom, err := r.withRoster(ctx, row)
	if err != nil {
		return entities.Classroom{}, false, err
	}
	return classroom, true, nil
}

func (r *Repository) ListClassrooms(ctx context.Context) ([]entities.Classroom, error) {
	var rows []classroomModel
	if err := r.db.WithContext(ctx).Order("created_at, classroom_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withRosters(ctx, rows)
}

func (r *Repository) ListClassroomsByProfessor(ctx context.Context, professorID string) ([]entities.Classroom, error) {
	var rows []classroomModel
	err := r.db.WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("created_at, classroom_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withRosters(ctx, rows)
}

func (r *Repository) ListClassroomsByStudent(ctx context.Context, studentID string) ([]entities.Classroom, error) {
	var rows []classroomModel
	err := r.db.WithContext(ctx).
		Joins("JOIN classroom_students ON classroom_students.classroom_id = classrooms.classroom_id").
		Where("classroom_students.student_id = ?", studentID).
		Order("classrooms.created_at, classrooms.classroom_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withRosters(ctx, rows)
}

func (r *Repository) DeleteClassroom(ctx context.Context, classroomID string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("classroom_id = ?", classroomID).Delete(&enrollmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("classroom_id = ?", classroomID).Delete(&classroomModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// AddStudent is a single insert-if-absent against the enrollment table; the
// composite primary key makes the membership check and the write one atomic
// statement, so concurrent adds cannot produce duplicates.
func (r *Repository) AddStudent(ctx context.Context, classroomID string, studentID string) (bool, error) {
	row := enrollmentModel{ClassroomID: classroomID, StudentID: studentID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "classroom_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) RemoveStudent(ctx context.Context, classroomID string, studentID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("classroom_id = ? AND student_id = ?", classroomID, studentID).
		Delete(&enrollmentModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveStudentFromAll pulls the student from every roster in one DELETE.
func (r *Repository) RemoveStudentFromAll(ctx context.Context, studentID string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&enrollmentModel{}).Error
}

func (r *Repository) CreateTask(ctx context.Context, task entities.Task) error {
	row := taskModel{
		TaskID:      task.ID,
		ClassroomID: task.ClassroomID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetTask(ctx context.Context, taskID string) (entities.Task, bool, error) {
	var row taskModel
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, false, nil
		}
		return entities.Task{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListTasksByClassroom(ctx context.Context, classroomID string) ([]entities.Task, error) {
	var rows []taskModel
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Order("created_at, task_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	tasks := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toEntity())
	}
	return tasks, nil
}

func (r *Repository) UpdateTask(ctx context.Context, task entities.Task) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("task_id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"due_date":    task.DueDate,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&taskModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateSubmission relies on the (task_id, student_id) unique index: the
// insert either lands or reports the duplicate, with no separate check step.
func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) (bool, error) {
	row := submissionModel{
		SubmissionID: submission.ID,
		TaskID:       submission.TaskID,
		StudentID:    submission.StudentID,
		FileRef:      submission.FileRef,
		FileName:     submission.FileName,
		SubmittedAt:  submission.SubmittedAt,
		Grade:        submission.Grade,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, bool, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, false, nil
		}
		return entities.Submission{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListSubmissionsByTask(ctx context.Context, taskID string) ([]entities.Submission, error) {
	return r.listSubmissions(ctx, "task_id = ?", taskID)
}

func (r *Repository) ListSubmissionsByStudent(ctx context.Context, studentID string) ([]entities.Submission, error) {
	return r.listSubmissions(ctx, "student_id = ?", studentID)
}

func (r *Repository) SetGrade(ctx context.Context, submissionID string, grade string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", submissionID).
		Update("grade", grade)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteSubmission(ctx context.Context, submissionID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).Delete(&submissionModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) CreateMaterial(ctx context.Context, material entities.Material) error {
	row := materialModel{
		MaterialID:  material.ID,
		ClassroomID: material.ClassroomID,
		ProfessorID: material.ProfessorID,
		Title:       material.Title,
		FileRef:     material.FileRef,
		FileName:    material.FileName,
		UploadedAt:  material.UploadedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetMaterial(ctx context.Context, materialID string) (entities.Material, bool, error) {
	var row materialModel
	err := r.db.WithContext(ctx).Where("material_id = ?", materialID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Material{}, false, nil
		}
		return entities.Material{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListMaterialsByClassroom(ctx context.Context, classroomID string) ([]entities.Material, error) {
	var rows []materialModel
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Order("uploaded_at, material_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	materials := make([]entities.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, row.toEntity())
	}
	return materials, nil
}

func (r *Repository) DeleteMaterial(ctx context.Context, materialID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("material_id = ?", materialID).Delete(&materialModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) listSubmissions(ctx context.Context, condition string, arg string) ([]entities.Submission, error) {
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where(condition, arg).
		Order("submitted_at, submission_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	submissions := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, row.toEntity())
	}
	return submissions, nil
}

func (r *Repository) withRoster(ctx context.Context, row classroomModel) (entities.Classroom, error) {
	var enrollments []enrollmentModel
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", row.ClassroomID).
		Order("student_id").
		Find(&enrollments).Error
	if err != nil {
		return entities.Classroom{}, err
	}
	studentIDs := make([]string, 0, len(enrollments))
	for _, enrollment := range enrollments {
		studentIDs = append(studentIDs, enrollment.StudentID)
	}
	return entities.Classroom{
		ID:          row.ClassroomID,
		Name:        row.Name,
		ProfessorID: row.ProfessorID,
		StudentIDs:  studentIDs,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *Repository) withRosters(ctx context.Context, rows []classroomModel) ([]entities.Classroom, error) {
	classrooms := make([]entities.Classroom, 0, len(rows))
	for _, row := range rows {
		classroom, err := r.withRoster(ctx, row)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, classroom)
	}
	return classrooms, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
