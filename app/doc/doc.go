package doc

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

const documentPath = "/docs/swagger.json"

func swaggerJSON(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read Swagger doc"})
			return
		}

		var document map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &document); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Swagger doc"})
			return
		}

		document["servers"] = serversFor(environment)

		components, _ := document["components"].(map[string]interface{})
		if components == nil {
			components = map[string]interface{}{}
			document["components"] = components
		}
		schemes, _ := components["securitySchemes"].(map[string]interface{})
		if schemes == nil {
			schemes = map[string]interface{}{}
			components["securitySchemes"] = schemes
		}
		schemes["BearerAuth"] = map[string]interface{}{
			"type":         "http",
			"scheme":       "bearer",
			"bearerFormat": "PASETO",
			"description":  "Access token from /api/v1/users/login",
		}

		out, err := json.Marshal(document)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Swagger doc"})
			return
		}
		c.Data(http.StatusOK, "application/json", out)
	}
}

func serversFor(environment string) []map[string]interface{} {
	servers := []map[string]interface{}{
		{
			"url":         "http://localhost:8080/api/v1",
			"description": "Local Development Server",
		},
	}

	if environment == "staging" || environment == "production" {
		servers = append(servers, map[string]interface{}{
			"url":         "https://placement-staging.example.com/api/v1",
			"description": "Staging Server",
		})
	}
	if environment == "production" {
		servers = append(servers, map[string]interface{}{
			"url":         "https://placement.example.com/api/v1",
			"description": "Production Server",
		})
	}
	return servers
}

func serveElements(c *gin.Context) {
	page := `<!DOCTYPE html>
<html>
<head>
    <title>Placement API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
    <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
    <style>
        body { margin: 0; padding: 0; height: 100vh; }
        elements-api { height: 100%; }
    </style>
</head>
<body>
    <elements-api apiDescriptionUrl="` + documentPath + `" router="hash" layout="sidebar"></elements-api>
</body>
</html>`
	c.Header("Content-Type", "text/html")
	c.String(http.StatusOK, page)
}

// Init mounts the API reference UI at /docs and its OpenAPI document at /docs/swagger.json.
func Init(r *gin.Engine, environment string) {
	r.GET(documentPath, swaggerJSON(environment))
	r.GET("/docs", serveElements)
}
