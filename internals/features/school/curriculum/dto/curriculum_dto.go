package dto

import (
	"strings"

	"github.com/google/uuid"

	"sei_backend/internals/features/school/curriculum/model"
)

/* ===============================
   Formation types
=================================*/

type FormationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
}

type FormationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromFormation(m model.FormationTypeModel) FormationResponse {
	return FormationResponse{ID: m.FormationTypeID, Name: m.FormationTypeName}
}

/* ===============================
   Knowledge areas
=================================*/

type KnowledgeAreaRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=150"`
	FormationTypeID string `json:"formationTypeId" validate:"required,uuid"`
}

func (r KnowledgeAreaRequest) ToModel() model.KnowledgeAreaModel {
	return model.KnowledgeAreaModel{
		KnowledgeAreaName:            strings.TrimSpace(r.Name),
		KnowledgeAreaFormationTypeID: uuid.MustParse(r.FormationTypeID),
	}
}

type KnowledgeAreaResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	FormationTypeID uuid.UUID `json:"formationTypeId"`
}

func FromKnowledgeArea(m model.KnowledgeAreaModel) KnowledgeAreaResponse {
	return KnowledgeAreaResponse{ID: m.KnowledgeAreaID, Name: m.KnowledgeAreaName, FormationTypeID: m.KnowledgeAreaFormationTypeID}
}

/* ===============================
   Sub-areas
=================================*/

type SubAreaRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=150"`
	KnowledgeAreaID string `json:"knowledgeAreaId" validate:"required,uuid"`
}

func (r SubAreaRequest) ToModel() model.SubAreaModel {
	return model.SubAreaModel{
		SubAreaName:            strings.TrimSpace(r.Name),
		SubAreaKnowledgeAreaID: uuid.MustParse(r.KnowledgeAreaID),
	}
}

type SubAreaResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	KnowledgeAreaID uuid.UUID `json:"knowledgeAreaId"`
}

func FromSubArea(m model.SubAreaModel) SubAreaResponse {
	return SubAreaResponse{ID: m.SubAreaID, Name: m.SubAreaName, KnowledgeAreaID: m.SubAreaKnowledgeAreaID}
}

func mapSlice[M any, R any](rows []M, fn func(M) R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func FromFormations(rows []model.FormationTypeModel) []FormationResponse {
	return mapSlice(rows, FromFormation)
}

func FromKnowledgeAreas(rows []model.KnowledgeAreaModel) []KnowledgeAreaResponse {
	return mapSlice(rows, FromKnowledgeArea)
}

func FromSubAreas(rows []model.SubAreaModel) []SubAreaResponse {
	return mapSlice(rows, FromSubArea)
}
