package httpadapter

import (
	"context"
	"log/slog"

	"campus/contexts/learning/classroom-service/application"
	"campus/contexts/learning/classroom-service/domain/entities"
	httptransport "campus/contexts/learning/classroom-service/transport/http"
)

// Handler maps HTTP DTOs to classroom application calls. File uploads arrive
// already extracted from their multipart envelope.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateClassroomHandler(ctx context.Context, request httptransport.CreateClassroomRequest) (httptransport.ClassroomDTO, error) {
	classroom, err := h.Service.CreateClassroom(ctx, request.Name, request.ProfessorID)
	if err != nil {
		return httptransport.ClassroomDTO{}, err
	}
	return toClassroomDTO(classroom), nil
}

func (h Handler) GetClassroomHandler(ctx context.Context, classroomID string) (httptransport.ClassroomDTO, error) {
	classroom, err := h.Service.GetClassroom(ctx, classroomID)
	if err != nil {
		return httptransport.ClassroomDTO{}, err
	}
	return toClassroomDTO(classroom), nil
}

func (h Handler) ListClassroomsHandler(ctx context.Context, userID string, role string) (httptransport.ListClassroomsResponse, error) {
	classrooms, err := h.Service.ListClassroomsFor(ctx, userID, role)
	if err != nil {
		return httptransport.ListClassroomsResponse{}, err
	}
	out := httptransport.ListClassroomsResponse{Classrooms: make([]httptransport.ClassroomDTO, 0, len(classrooms))}
	for _, classroom := range classrooms {
		out.Classrooms = append(out.Classrooms, toClassroomDTO(classroom))
	}
	return out, nil
}

func (h Handler) DeleteClassroomHandler(ctx context.Context, classroomID string) error {
	return h.Service.DeleteClassroom(ctx, classroomID)
}

func (h Handler) EnrollStudentHandler(ctx context.Context, classroomID string, studentID string) error {
	return h.Service.AddStudent(ctx, classroomID, studentID)
}

func (h Handler) UnenrollStudentHandler(ctx context.Context, classroomID string, studentID string) error {
	return h.Service.RemoveStudent(ctx, classroomID, studentID)
}

func (h Handler) CreateTaskHandler(ctx context.Context, classroomID string, request httptransport.TaskRequest) (httptransport.TaskDTO, error) {
	task, err := h.Service.CreateTask(ctx, classroomID, application.TaskInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
	})
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) GetTaskHandler(ctx context.Context, taskID string) (httptransport.TaskDTO, error) {
	task, err := h.Service.GetTask(ctx, taskID)
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) ListTasksHandler(ctx context.Context, classroomID string) (httptransport.ListTasksResponse, error) {
	tasks, err := h.Service.ListTasks(ctx, classroomID)
	if err != nil {
		return httptransport.ListTasksResponse{}, err
	}
	out := httptransport.ListTasksResponse{Tasks: make([]httptransport.TaskDTO, 0, len(tasks))}
	for _, task := range tasks {
		out.Tasks = append(out.Tasks, toTaskDTO(task))
	}
	return out, nil
}

func (h Handler) UpdateTaskHandler(ctx context.Context, taskID string, request httptransport.TaskRequest) (httptransport.TaskDTO, error) {
	task, err := h.Service.UpdateTask(ctx, taskID, application.TaskInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
	})
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) DeleteTaskHandler(ctx context.Context, taskID string) error {
	return h.Service.DeleteTask(ctx, taskID)
}

func (h Handler) CreateSubmissionHandler(ctx context.Context, taskID string, studentID string, fileName string, data []byte) (httptransport.SubmissionDTO, error) {
	submission, err := h.Service.CreateSubmission(ctx, taskID, studentID, fileName, data)
	if err != nil {
		return httptransport.SubmissionDTO{}, err
	}
	return toSubmissionDTO(submission), nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionDTO, error) {
	submission, err := h.Service.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.SubmissionDTO{}, err
	}
	return toSubmissionDTO(submission), nil
}

func (h Handler) ListSubmissionsHandler(ctx context.Context, taskID string) (httptransport.ListSubmissionsResponse, error) {
	submissions, err := h.Service.ListSubmissions(ctx, taskID)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	out := httptransport.ListSubmissionsResponse{Submissions: make([]httptransport.SubmissionDTO, 0, len(submissions))}
	for _, submission := range submissions {
		out.Submissions = append(out.Submissions, toSubmissionDTO(submission))
	}
	return out, nil
}

func (h Handler) DeleteSubmissionHandler(ctx context.Context, submissionID string) error {
	return h.Service.DeleteSubmission(ctx, submissionID)
}

func (h Handler) GradeSubmissionHandler(ctx context.Context, submissionID string, request httptransport.GradeSubmissionRequest) (httptransport.SubmissionDTO, error) {
	submission, err := h.Service.GradeSubmission(ctx, submissionID, request.Grade)
	if err != nil {
		return httptransport.SubmissionDTO{}, err
	}
	return toSubmissionDTO(submission), nil
}

func (h Handler) DownloadSubmissionHandler(ctx context.Context, submissionID string) ([]byte, string, error) {
	return h.Service.DownloadSubmission(ctx, submissionID)
}

func (h Handler) UploadMaterialHandler(ctx context.Context, classroomID string, title string, fileName string, data []byte) (httptransport.MaterialDTO, error) {
	material, err := h.Service.UploadMaterial(ctx, classroomID, title, fileName, data)
	if err != nil {
		return httptransport.MaterialDTO{}, err
	}
	return toMaterialDTO(material), nil
}

func (h Handler) GetMaterialHandler(ctx context.Context, materialID string) (httptransport.MaterialDTO, error) {
	material, err := h.Service.GetMaterial(ctx, materialID)
	if err != nil {
		return httptransport.MaterialDTO{}, err
	}
	return toMaterialDTO(material), nil
}

func (h Handler) ListMaterialsHandler(ctx context.Context, classroomID string) (httptransport.ListMaterialsResponse, error) {
	materials, err := h.Service.ListMaterials(ctx, classroomID)
	if err != nil {
		return httptransport.ListMaterialsResponse{}, err
	}
	out := httptransport.ListMaterialsResponse{Materials: make([]httptransport.MaterialDTO, 0, len(materials))}
	for _, material := range materials {
		out.Materials = append(out.Materials, toMaterialDTO(material))
	}
	return out, nil
}

func (h Handler) DeleteMaterialHandler(ctx context.Context, materialID string) error {
	return h.Service.DeleteMaterial(ctx, materialID)
}

func (h Handler) DownloadMaterialHandler(ctx context.Context, materialID string) ([]byte, string, error) {
	return h.Service.DownloadMaterial(ctx, materialID)
}

func toClassroomDTO(classroom entities.Classroom) httptransport.ClassroomDTO {
	studentIDs := classroom.StudentIDs
	if studentIDs == nil {
		studentIDs = []string{}
	}
	return httptransport.ClassroomDTO{
		ClassroomID: classroom.ID,
		Name:        classroom.Name,
		ProfessorID: classroom.ProfessorID,
		StudentIDs:  studentIDs,
		CreatedAt:   classroom.CreatedAt,
	}
}

func toTaskDTO(task entities.Task) httptransport.TaskDTO {
	return httptransport.TaskDTO{
		TaskID:      task.ID,
		ClassroomID: task.ClassroomID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
}

func toSubmissionDTO(submission entities.Submission) httptransport.SubmissionDTO {
	return httptransport.SubmissionDTO{
		SubmissionID: submission.ID,
		TaskID:       submission.TaskID,
		StudentID:    submission.StudentID,
		FileName:     submission.FileName,
		SubmittedAt:  submission.SubmittedAt,
		Grade:        submission.Grade,
	}
}

func toMaterialDTO(material entities.Material) httptransport.MaterialDTO {
	return httptransport.MaterialDTO{
		MaterialID:  material.ID,
		ClassroomID: material.ClassroomID,
		ProfessorID: material.ProfessorID,
		Title:       material.Title,
		FileName:    material.FileName,
		UploadedAt:  material.UploadedAt,
	}
}
