package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/service"
)

// APIHandler は共有コレクションのREST APIを処理します
type APIHandler struct {
	svc *service.Service
}

func NewAPIHandler(s *service.Service) *APIHandler { return &APIHandler{svc: s} }

// milestoneRequest はマイルストーン追加リクエストです
type milestoneRequest struct {
	models.Milestone
	CreatedBy string `json:"createdBy"`
}

// createFunc はリクエストボディをTにデコードしてcreateを呼び出し、作成されたレコードを返すハンドラーです
func createFunc[T any](kind string, create func(context.Context, T) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if !decodeJSON(w, r, &in) {
			return
		}
		out, err := create(r.Context(), in)
		if err != nil {
			log.Printf("Create %s error: %v", kind, err)
			writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// updateFunc はパスの {id} のレコードにリクエストボディを部分更新として適用するハンドラーです
func updateFunc[T any](kind string, update func(context.Context, string, service.Patch) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := normalizeID(chi.URLParam(r, "id"))
		if err := validateID("id", id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var patch service.Patch
		if !decodeJSON(w, r, &patch) {
			return
		}
		out, err := update(r.Context(), id, patch)
		if err != nil {
			log.Printf("Update %s error (id=%s): %v", kind, id, err)
			writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// actionFunc はパスの {id} のレコードに対する操作（投票・回答など）のハンドラーです
func actionFunc[Req, T any](kind string, act func(context.Context, string, Req) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := normalizeID(chi.URLParam(r, "id"))
		if err := validateID("id", id); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var in Req
		if !decodeJSON(w, r, &in) {
			return
		}
		out, err := act(r.Context(), id, in)
		if err != nil {
			log.Printf("%s error (id=%s): %v", kind, id, err)
			writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// List はコレクションの全件を返すハンドラーを作成します
func (h *APIHandler) List(res models.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, h.svc.List(res))
	}
}

func (h *APIHandler) Roles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Roles())
}

func (h *APIHandler) CreateUser() http.HandlerFunc { return createFunc("user", h.svc.CreateUser) }
func (h *APIHandler) UpdateUser() http.HandlerFunc { return updateFunc("user", h.svc.UpdateUser) }

func (h *APIHandler) CreateTask() http.HandlerFunc { return createFunc("task", h.svc.CreateTask) }
func (h *APIHandler) UpdateTask() http.HandlerFunc { return updateFunc("task", h.svc.UpdateTask) }

// DeleteTask はタスクを削除します。操作者は ?userId= で指定します
func (h *APIHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := normalizeID(chi.URLParam(r, "id"))
	if err := validateID("id", id); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	actor := normalizeID(r.URL.Query().Get("userId"))
	if err := h.svc.DeleteTask(r.Context(), id, actor); err != nil {
		log.Printf("Delete task error (id=%s): %v", id, err)
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *APIHandler) CreateProject() http.HandlerFunc {
	return createFunc("project", h.svc.CreateProject)
}
func (h *APIHandler) UpdateProject() http.HandlerFunc {
	return updateFunc("project", h.svc.UpdateProject)
}

func (h *APIHandler) AddMilestone() http.HandlerFunc {
	return actionFunc("Add milestone", func(ctx context.Context, projectID string, in milestoneRequest) (models.Milestone, error) {
		return h.svc.AddMilestone(ctx, projectID, in.Milestone, in.CreatedBy)
	})
}

func (h *APIHandler) CreateClient() http.HandlerFunc { return createFunc("client", h.svc.CreateClient) }
func (h *APIHandler) UpdateClient() http.HandlerFunc { return updateFunc("client", h.svc.UpdateClient) }

func (h *APIHandler) CreateApproval() http.HandlerFunc {
	return createFunc("approval", h.svc.CreateApproval)
}
func (h *APIHandler) RespondApproval() http.HandlerFunc {
	return actionFunc("Respond approval", h.svc.RespondApproval)
}

func (h *APIHandler) CreateExpense() http.HandlerFunc {
	return createFunc("expense", h.svc.CreateExpense)
}
func (h *APIHandler) UpdateExpense() http.HandlerFunc {
	return updateFunc("expense", h.svc.UpdateExpense)
}
func (h *APIHandler) CreateIncome() http.HandlerFunc { return createFunc("income", h.svc.CreateIncome) }

func (h *APIHandler) CreateDecision() http.HandlerFunc {
	return createFunc("decision", h.svc.CreateDecision)
}
func (h *APIHandler) Vote() http.HandlerFunc    { return actionFunc("Vote", h.svc.Vote) }
func (h *APIHandler) Comment() http.HandlerFunc { return actionFunc("Comment", h.svc.Comment) }

func (h *APIHandler) PostMessage() http.HandlerFunc {
	return createFunc("message", h.svc.PostMessage)
}
func (h *APIHandler) PostAnnouncement() http.HandlerFunc {
	return createFunc("announcement", h.svc.PostAnnouncement)
}

func (h *APIHandler) CreateMeeting() http.HandlerFunc {
	return createFunc("meeting", h.svc.CreateMeeting)
}
func (h *APIHandler) UpdateMeeting() http.HandlerFunc {
	return updateFunc("meeting", h.svc.UpdateMeeting)
}

func (h *APIHandler) UploadFile() http.HandlerFunc { return createFunc("file", h.svc.UploadFile) }

func (h *APIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Dashboard())
}

func (h *APIHandler) Audit(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.AuditReport())
}
