package application

import (
	"context"
	"strings"

	"campus/contexts/learning/classroom-service/domain/entities"
	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
)

// UploadMaterial stores the file and records the material. The uploader is
// the classroom's professor at time of creation by construction; an admin
// uploading on a professor's behalf still records the owning professor.
func (s Service) UploadMaterial(ctx context.Context, classroomID string, title string, fileName string, data []byte) (entities.Material, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return entities.Material{}, domainerrors.ErrInvalidRequest
	}
	classroom, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return entities.Material{}, err
	}
	if !found {
		return entities.Material{}, domainerrors.ErrClassroomNotFound
	}

	fileRef, err := s.Blobs.Store(ctx, data)
	if err != nil {
		return entities.Material{}, err
	}
	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Material{}, err
	}
	material := entities.Material{
		ID:          id,
		ClassroomID: classroomID,
		ProfessorID: classroom.ProfessorID,
		Title:       strings.TrimSpace(title),
		FileRef:     fileRef,
		FileName:    fileName,
		UploadedAt:  s.Clock.Now(),
	}
	if err := s.Materials.CreateMaterial(ctx, material); err != nil {
		return entities.Material{}, err
	}

	s.logger().Info("material uploaded",
		"event", "material_uploaded",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroomID,
		"material_id", material.ID,
	)
	return material, nil
}

// GetMaterial returns one material.
func (s Service) GetMaterial(ctx context.Context, materialID string) (entities.Material, error) {
	material, found, err := s.Materials.GetMaterial(ctx, materialID)
	if err != nil {
		return entities.Material{}, err
	}
	if !found {
		return entities.Material{}, domainerrors.ErrMaterialNotFound
	}
	return material, nil
}

// ListMaterials returns a classroom's materials.
func (s Service) ListMaterials(ctx context.Context, classroomID string) ([]entities.Material, error) {
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrClassroomNotFound
	}
	return s.Materials.ListMaterialsByClassroom(ctx, classroomID)
}

// DeleteMaterial removes a material and releases its file.
func (s Service) DeleteMaterial(ctx context.Context, materialID string) error {
	material, found, err := s.Materials.GetMaterial(ctx, materialID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrMaterialNotFound
	}

	if material.FileRef != "" {
		if err := s.Blobs.Delete(ctx, material.FileRef); err != nil {
			return err
		}
	}
	if _, err := s.Materials.DeleteMaterial(ctx, materialID); err != nil {
		return err
	}

	s.logger().Info("material deleted",
		"event", "material_deleted",
		"module", "learning/classroom-service",
		"layer", "application",
		"material_id", materialID,
	)
	return nil
}

// DownloadMaterial returns the stored file bytes and name.
func (s Service) DownloadMaterial(ctx context.Context, materialID string) ([]byte, string, error) {
	material, found, err := s.Materials.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domainerrors.ErrMaterialNotFound
	}
	data, found, err := s.Blobs.Fetch(ctx, material.FileRef)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domainerrors.ErrFileMissing
	}
	return data, material.FileName, nil
}
