package endpoint

import (
	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CreateTreatment godoc
// @Summary      Create a new treatment
// @Description  Record a treatment. The treated patient is assigned the treatment's medic.
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Param        request body model.TreatmentRequest true "Treatment information"
// @Success      200 {object} util.APIResponse{data=model.TreatmentResponse} "Treatment created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient or medic not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /treatment/ [post]
func CreateTreatment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	var req model.TreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	treatment, err := repository.CreateTreatment(db, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to create treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment created",
		Data: model.NewTreatmentResponse(treatment),
	})
}

// GetTreatment godoc
// @Summary      Get treatment information
// @Tags         Treatment
// @Produce      json
// @Param        id path int true "Treatment ID"
// @Success      200 {object} util.APIResponse{data=model.TreatmentResponse} "Treatment retrieved"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /treatment/{id} [get]
func GetTreatment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	treatment, err := repository.GetTreatment(db, id)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment retrieved",
		Data: model.NewTreatmentResponse(treatment),
	})
}

// ListTreatments godoc
// @Summary      List treatments
// @Tags         Treatment
// @Produce      json
// @Param        page query int false "Row offset" default(0)
// @Param        per_page query int false "Window size" default(10)
// @Success      200 {object} util.APIResponse{data=[]model.TreatmentResponse} "Treatments retrieved"
// @Router       /treatment/ [get]
func ListTreatments(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	treatments, err := repository.ListTreatments(db, page)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve treatments")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Treatments retrieved",
		Data: lo.Map(treatments, func(t model.Treatment, _ int) model.TreatmentResponse {
			return model.NewTreatmentResponse(t)
		}),
	})
}

// UpdateTreatment godoc
// @Summary      Replace a treatment
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Param        id path int true "Treatment ID"
// @Param        request body model.TreatmentRequest true "Treatment information"
// @Success      200 {object} util.APIResponse{data=model.TreatmentResponse} "Treatment updated"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /treatment/{id} [put]
func UpdateTreatment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.TreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	treatment, err := repository.UpdateTreatment(db, id, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to update treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment updated",
		Data: model.NewTreatmentResponse(treatment),
	})
}

// DeleteTreatment godoc
// @Summary      Delete a treatment
// @Tags         Treatment
// @Produce      json
// @Param        id path int true "Treatment ID"
// @Success      200 {object} util.APIResponse{data=model.DeleteResponse} "Treatment deleted"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /treatment/{id} [delete]
func DeleteTreatment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := repository.DeleteTreatment(db, id); err != nil {
		util.CallAppError(c, err, "Failed to delete treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment deleted",
		Data: model.DeleteResponse{Message: "Treatment deleted"},
	})
}
