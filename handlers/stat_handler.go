package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

type StatHandler struct {
	statService services.StatService
}

func NewStatHandler(ss services.StatService) *StatHandler {
	return &StatHandler{statService: ss}
}

// UpsertStat создаёт либо целиком заменяет запись статистики для пары
// игрок-игра. Повторная отправка побеждает предыдущую запись.
func (h *StatHandler) UpsertStat(w http.ResponseWriter, r *http.Request) {
	var input services.StatInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stat, err := h.statService.Upsert(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"stat": stat,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatHandler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	statID, err := getIDFromURL(r, "statID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.statService.Delete(r.Context(), statID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportStats принимает CSV-файл в multipart-поле "file" и записывает
// статистику одним батчем. Ошибки строк возвращаются с номерами строк,
// при любой из них ни одна запись не сохраняется.
func (h *StatHandler) ImportStats(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("csv file is required in the \"file\" form field"))
		return
	}
	defer file.Close()

	summary, err := h.statService.ImportCSV(r.Context(), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, summary, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
