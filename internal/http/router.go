package httpserver

import (
	"github.com/gin-gonic/gin"

	"cords_connector/internal/auth"
	"cords_connector/internal/broker"
	"cords_connector/internal/description"
	"cords_connector/internal/http/handlers"
	"cords_connector/internal/pip"
	"cords_connector/internal/store"
	"cords_connector/internal/transfer"
)

// Deps bundles everything the routes close over. Constructed once at
// process start and passed in; no handler builds its own collaborators.
type Deps struct {
	Policies    *store.Policies
	Resources   *store.Resources
	Connectors  *store.Connectors
	Models      *store.Models
	FLServices  *store.FLServices
	Users       *store.Users
	PDP         *pip.PDP
	Builder     *description.Builder
	Broker      *broker.TrueConnector
	Coordinator *transfer.Coordinator
	Tracker     *transfer.Tracker
	JWTSecret   string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	authMW := auth.JWT(d.Users, d.JWTSecret)

	r.POST("/auth/register", handlers.RegisterUser(d.Users))
	r.POST("/auth/login", handlers.Login(d.Users, d.JWTSecret))

	policy := r.Group("/policy", authMW)
	{
		policy.POST("/add_policy", handlers.AddPolicy(d.Policies))
		policy.GET("/get_policies/:resource_id", handlers.GetPolicies(d.Policies))
		policy.DELETE("/remove_policy/:policy_id", handlers.RemovePolicy(d.Policies))
	}

	// The PIP is consulted by the usage-control plane of the external
	// connector, which authenticates at transport level; no bearer gate.
	pipGroup := r.Group("/pip")
	{
		pipGroup.GET("/access/", handlers.Access(d.PDP))
		pipGroup.GET("/purpose/", handlers.Purpose())
		pipGroup.GET("/role/", handlers.Role())
	}

	connector := r.Group("/dataspace_connector")
	{
		connector.POST("/add_connector", handlers.AddConnector(d.Connectors))
		connector.GET("/get_connector/:id", handlers.GetConnector(d.Connectors))
		connector.POST("/register_resource/:resource_id", handlers.RegisterResource(d.Builder, d.Broker))
	}

	resource := r.Group("/dataspace_resource")
	{
		resource.POST("/create_resource", handlers.CreateResource(d.Resources))
		resource.GET("/get_resource/:resource_id", handlers.GetResource(d.Resources))
		resource.POST("/create_resource_description/:resource_id", handlers.CreateResourceDescription(d.Builder))
		resource.POST("/download_resource/:resource_id", handlers.DownloadResource(d.Coordinator))
		resource.GET("/transfer_status/:job_id", handlers.TransferStatus(d.Tracker))
	}

	mlModels := r.Group("/ml_models")
	{
		mlModels.POST("/add_model", handlers.AddModel(d.Models))
		mlModels.GET("/get_model/:model_id", handlers.GetModel(d.Models))
	}

	flServices := r.Group("/fl_services")
	{
		flServices.POST("/add", handlers.AddService(d.FLServices))
		flServices.GET("/get/:fl_service_id", handlers.GetService(d.FLServices))
		flServices.GET("/list", handlers.ListServices(d.FLServices))
		flServices.PUT("/update/:fl_service_id", handlers.UpdateService(d.FLServices))
		flServices.GET("/summary", handlers.ServiceSummary(d.FLServices, d.Resources, d.Policies))
	}

	frontEnd := r.Group("/front_end")
	{
		frontEnd.POST("/add_fl_service", handlers.AddServiceWithResource(d.FLServices, d.Resources))
		frontEnd.GET("/list_service_summary", handlers.ServiceSummary(d.FLServices, d.Resources, d.Policies))
	}

	return r
}
