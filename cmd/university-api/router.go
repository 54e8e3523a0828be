package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/contoso-university-api/api/swagger"
	"github.com/noah-isme/contoso-university-api/internal/handler"
	"github.com/noah-isme/contoso-university-api/internal/middleware"
	"github.com/noah-isme/contoso-university-api/internal/repository"
	"github.com/noah-isme/contoso-university-api/internal/service"
	"github.com/noah-isme/contoso-university-api/pkg/config"
	"github.com/noah-isme/contoso-university-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/contoso-university-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/contoso-university-api/pkg/middleware/requestid"
)

func newRouter(cfg *config.Config, db *sqlx.DB, logr *zap.Logger) *gin.Engine {
	var metrics *service.MetricsService
	var observer repository.QueryObserver
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		observer = metrics
	}

	courses := repository.NewCourseRepository(db, observer)
	instructors := repository.NewInstructorRepository(db, observer)
	departments := repository.NewDepartmentRepository(db, observer)
	students := repository.NewStudentRepository(db, observer)
	enrollments := repository.NewEnrollmentRepository(db, observer)

	validate := validator.New()
	courseSvc := service.NewCourseService(courses, logr)
	instructorSvc := service.NewInstructorService(instructors, logr)
	departmentSvc := service.NewDepartmentService(departments, logr)
	studentSvc := service.NewStudentService(students, enrollments, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollments, validate, logr)
	reportSvc := service.NewReportService(enrollments, students, nil, nil, logr)
	authSvc := service.NewAuthService(cfg.Auth)

	courseHandler := handler.NewCourseHandler(courseSvc)
	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	departmentHandler := handler.NewDepartmentHandler(departmentSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.StoreTimeout(cfg.Database.QueryTimeout))
	guard := middleware.AdminOnly(cfg.Auth.Enabled, authSvc)
	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), h)
	}

	api.GET("/courses", courseHandler.List)
	api.GET("/departments", departmentHandler.List)
	api.GET("/instructors", instructorHandler.List)

	api.GET("/students", studentHandler.Search)
	api.GET("/students/summary", studentHandler.Summary)
	api.GET("/students/:id", studentHandler.Get)
	api.PUT("/students/:id", admin(studentHandler.Update)...)
	api.DELETE("/students/:id", admin(studentHandler.Delete)...)

	api.GET("/enrollments/by-date", enrollmentHandler.CountsByDate)
	api.POST("/enrollments", admin(enrollmentHandler.Enroll)...)
	api.DELETE("/enrollments/:id", admin(enrollmentHandler.Delete)...)

	api.GET("/reports/enrollments-by-date", reportHandler.EnrollmentsByDate)
	api.GET("/reports/student-summary", reportHandler.StudentSummary)

	return r
}
