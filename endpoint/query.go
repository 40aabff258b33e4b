package endpoint

import (
	"strings"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/ariebrainware/hospital-records/repository"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// SearchPatients godoc
// @Summary      Search patients by treatment
// @Description  Patients having at least one treatment with both the given diagnosis and current state
// @Tags         Query
// @Produce      json
// @Param        diagnosis query string true "Diagnosis"
// @Param        current_state query string true "Current state"
// @Success      200 {object} util.APIResponse{data=[]model.PatientResponse} "Patients found"
// @Failure      404 {object} util.APIResponse "No patients found"
// @Router       /api/patients/search [get]
func SearchPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	patients, err := repository.SearchPatients(db, c.Query("diagnosis"), c.Query("current_state"))
	if err != nil {
		util.CallAppError(c, err, "Failed to search patients")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients found",
		Data: patientResponses(patients),
	})
}

// PatientsWithMedic godoc
// @Summary      Patients with their assigned medic
// @Description  Patients without an assigned medic are omitted
// @Tags         Query
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.PatientWithMedicResponse} "Patients retrieved"
// @Router       /api/patients_with_medic/ [get]
func PatientsWithMedic(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	rows, err := repository.PatientsWithMedic(db)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve patients")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patients retrieved",
		Data: lo.Map(rows, func(row model.PatientWithMedicRow, _ int) model.PatientWithMedicResponse {
			return model.NewPatientWithMedicResponse(row)
		}),
	})
}

// SortedPatients godoc
// @Summary      List patients sorted by a column
// @Tags         Query
// @Produce      json
// @Param        sort_by query string false "id|full_name|date_of_birth|policy_number|social_status" default(id)
// @Param        order query string false "asc|desc" default(asc)
// @Param        page query int false "Row offset" default(0)
// @Param        per_page query int false "Window size" default(10)
// @Success      200 {object} util.APIResponse{data=[]model.PatientResponse} "Patients retrieved"
// @Failure      400 {object} util.APIResponse "Invalid sort field or order"
// @Router       /api/patients [get]
func SortedPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	order := strings.ToLower(c.Query("order"))
	patients, err := repository.SortPatients(db, c.Query("sort_by"), order, page)
	if err != nil {
		util.CallAppError(c, err, "Failed to retrieve patients")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: patientResponses(patients),
	})
}

// UpdateTreatmentByConditions godoc
// @Summary      Update the first treatment matching diagnosis and state
// @Description  Fields are replaced only when the body carries a non-zero patient_id;
// @Description  otherwise the matched treatment is returned unchanged.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        diagnosis path string true "Diagnosis"
// @Param        current_state path string true "Current state"
// @Param        request body model.TreatmentRequest true "Treatment information"
// @Success      200 {object} util.APIResponse{data=model.TreatmentResponse} "Treatment updated"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Router       /api/treatments/update_by_conditions/{diagnosis}/{current_state} [put]
func UpdateTreatmentByConditions(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	var req model.TreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	treatment, err := repository.UpdateTreatmentByConditions(db, c.Param("diagnosis"), c.Param("current_state"), req)
	if err != nil {
		util.CallAppError(c, err, "Failed to update treatment")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment updated",
		Data: model.NewTreatmentResponse(treatment),
	})
}

// TreatmentStats godoc
// @Summary      Treatment count per diagnosis
// @Tags         Query
// @Produce      json
// @Success      200 {object} util.APIResponse{data=map[string]int} "Treatment statistics"
// @Router       /api/treatments/stats [get]
func TreatmentStats(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	stats, err := repository.TreatmentStats(db)
	if err != nil {
		util.CallAppError(c, err, "Failed to compute treatment statistics")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatment statistics",
		Data: stats,
	})
}
