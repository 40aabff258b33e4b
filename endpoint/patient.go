package endpoint

import (
	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

func patientResponses(patients []model.Patient) []model.PatientResponse {
	return lo.Map(patients, func(p model.Patient, _ int) model.PatientResponse {
		return model.NewPatientResponse(p)
	})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Description  Register a new patient. The policy number must be unique.
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body model.PatientRequest true "Patient information"
// @Success      200 {object} util.APIResponse{data=model.PatientResponse} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request or duplicate policy number"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/ [post]
func CreatePatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	var req model.PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := repository.CreatePatient(db, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to create patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: model.NewPatientResponse(patient),
	})
}

// GetPatient godoc
// @Summary      Get patient information
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.PatientResponse} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/{id} [get]
func GetPatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	patient, err := repository.GetPatient(db, id)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: model.NewPatientResponse(patient),
	})
}

// ListPatients godoc
// @Summary      List patients
// @Description  Get one window of patients in id order
// @Tags         Patient
// @Produce      json
// @Param        page query int false "Row offset" default(0)
// @Param        per_page query int false "Window size" default(10)
// @Success      200 {object} util.APIResponse{data=[]model.PatientResponse} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/ [get]
func ListPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	patients, err := repository.ListPatients(db, page)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve patients")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: patientResponses(patients),
	})
}

// UpdatePatient godoc
// @Summary      Replace a patient
// @Description  Overwrite every field of an existing patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body model.PatientRequest true "Patient information"
// @Success      200 {object} util.APIResponse{data=model.PatientResponse} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /patient/{id} [put]
func UpdatePatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := repository.UpdatePatient(db, id, req)
	if err != nil {
		util.CallAppError(c, err, "Failed to update patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: model.NewPatientResponse(patient),
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Delete a patient and every treatment it owns
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.DeleteResponse} "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /patient/{id} [delete]
func DeletePatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := repository.DeletePatient(db, id); err != nil {
		util.CallAppError(c, err, "Failed to delete patient")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient deleted",
		Data: model.DeleteResponse{Message: "Patient deleted"},
	})
}
