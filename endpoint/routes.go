package endpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/hospital-records/config"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every hospital-records route on r.
// writeLimiter guards the mutating routes; pass nil to leave them unlimited.
func RegisterRoutes(r *gin.Engine, writeLimiter gin.HandlerFunc) {
	write := []gin.HandlerFunc{}
	if writeLimiter != nil {
		write = append(write, writeLimiter)
	}
	with := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	r.GET("/", Welcome)
	r.GET("/healthz", Healthz)

	patient := r.Group("/patient")
	{
		patient.POST("/", with(CreatePatient)...)
		patient.GET("/", ListPatients)
		patient.GET("/:id", GetPatient)
		patient.PUT("/:id", with(UpdatePatient)...)
		patient.DELETE("/:id", with(DeletePatient)...)
	}

	medic := r.Group("/medic")
	{
		medic.POST("/", with(CreateMedic)...)
		medic.GET("/", ListMedics)
		medic.GET("/:id", GetMedic)
		medic.PUT("/:id", with(UpdateMedic)...)
		medic.DELETE("/:id", with(DeleteMedic)...)
	}

	treatment := r.Group("/treatment")
	{
		treatment.POST("/", with(CreateTreatment)...)
		treatment.GET("/", ListTreatments)
		treatment.GET("/:id", GetTreatment)
		treatment.PUT("/:id", with(UpdateTreatment)...)
		treatment.DELETE("/:id", with(DeleteTreatment)...)
	}

	api := r.Group("/api")
	{
		api.GET("/patients", SortedPatients)
		api.GET("/patients/search", SearchPatients)
		api.GET("/patients_with_medic/", PatientsWithMedic)
		api.GET("/treatments/stats", TreatmentStats)
		api.PUT("/treatments/update_by_conditions/:diagnosis/:current_state", with(UpdateTreatmentByConditions)...)
	}
}

// Welcome godoc
// @Summary      Service banner
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "Welcome"
// @Router       / [get]
func Welcome(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Welcome to %s!", config.LoadConfig().AppName),
		Data: map[string]string{},
	})
}

// Healthz godoc
// @Summary      Database health check
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "OK"
// @Failure      500 {object} util.APIResponse "Database unreachable"
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	if err := ping(c.Request.Context(), db); err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database unreachable",
			Err: err,
		})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "OK",
		Data: map[string]string{"database": "up"},
	})
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
