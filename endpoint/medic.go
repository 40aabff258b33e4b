package endpoint

import (
	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CreateMedic godoc
// @Summary      Create a new medic
// @Tags         Medic
// @Accept       json
// @Produce      json
// @Param        request body model.MedicRequest true "Medic information"
// @Success      200 {object} util.APIResponse{data=model.MedicResponse} "Medic created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /medic/ [post]
func CreateMedic(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	var req model.MedicRequest
	if !bindJSON(c, &req) {
		return
	}

	medic, err := repository.CreateMedic(db, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to create medic")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medic created",
		Data: model.NewMedicResponse(medic),
	})
}

// GetMedic godoc
// @Summary      Get medic information
// @Tags         Medic
// @Produce      json
// @Param        id path int true "Medic ID"
// @Success      200 {object} util.APIResponse{data=model.MedicResponse} "Medic retrieved"
// @Failure      404 {object} util.APIResponse "Medic not found"
// @Router       /medic/{id} [get]
func GetMedic(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	medic, err := repository.GetMedic(db, id)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve medic")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medic retrieved",
		Data: model.NewMedicResponse(medic),
	})
}

// ListMedics godoc
// @Summary      List medics
// @Description  Get one window of medics sorted ascending by sort_by.
// @Description  An unknown sort_by is not validated and fails with a server error.
// @Tags         Medic
// @Produce      json
// @Param        page query int false "Row offset" default(0)
// @Param        per_page query int false "Window size" default(10)
// @Param        sort_by query string false "id|full_name|speciality|exp_years" default(id)
// @Success      200 {object} util.APIResponse{data=[]model.MedicResponse} "Medics retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /medic/ [get]
func ListMedics(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	medics, err := repository.ListMedics(db, c.Query("sort_by"), page)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve medics")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Medics retrieved",
		Data: lo.Map(medics, func(m model.Medic, _ int) model.MedicResponse {
			return model.NewMedicResponse(m)
		}),
	})
}

// UpdateMedic godoc
// @Summary      Replace a medic
// @Tags         Medic
// @Accept       json
// @Produce      json
// @Param        id path int true "Medic ID"
// @Param        request body model.MedicRequest true "Medic information"
// @Success      200 {object} util.APIResponse{data=model.MedicResponse} "Medic updated"
// @Failure      404 {object} util.APIResponse "Medic not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /medic/{id} [put]
func UpdateMedic(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.MedicRequest
	if !bindJSON(c, &req) {
		return
	}

	medic, err := repository.UpdateMedic(db, id, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to update medic")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medic updated",
		Data: model.NewMedicResponse(medic),
	})
}

// DeleteMedic godoc
// @Summary      Delete a medic
// @Description  Delete a medic with its treatments and unassign it from its patients
// @Tags         Medic
// @Produce      json
// @Param        id path int true "Medic ID"
// @Success      200 {object} util.APIResponse{data=model.DeleteResponse} "Medic deleted"
// @Failure      404 {object} util.APIResponse "Medic not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /medic/{id} [delete]
func DeleteMedic(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := repository.DeleteMedic(db, id); err != nil {
		util.CallAppError(c, err, "Failed to delete medic")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medic deleted",
		Data: model.DeleteResponse{Message: "Medic deleted"},
	})
}
