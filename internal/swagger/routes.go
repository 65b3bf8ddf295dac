package swagger

import (
	"encoding/json"
	"fmt"
	"strings"

	"pixeltrack/internal/env"
	"pixeltrack/internal/swagger/docs"

	"github.com/gofiber/fiber/v3"
	"github.com/swaggo/swag"
)

const swaggerUIPath = "https://unpkg.com/swagger-ui-dist@5"

var uiTemplate = fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>pixeltrack API Docs</title>
  <link rel="stylesheet" href="%s/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="%s/swagger-ui-bundle.js"></script>
  <script src="%s/swagger-ui-standalone-preset.js"></script>
  <script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/doc.json',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
      layout: 'StandaloneLayout',
      deepLinking: true,
      displayRequestDuration: true,
      persistAuthorization: true,
      requestInterceptor: (req) => {
        const authHeader = req.headers && req.headers.Authorization;
        if (authHeader && !/^Bearer /i.test(authHeader)) {
          req.headers.Authorization = 'Bearer ' + authHeader;
        }
        return req;
      },
    });
  };
  </script>
</body>
</html>`, swaggerUIPath, swaggerUIPath, swaggerUIPath)

// Register wires swagger-ui routes backed by the registered swag doc.
func Register(router fiber.Router) {
	if router == nil {
		return
	}

	router.Get("/docs", func(c fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(uiTemplate)
	})

	router.Get("/docs/doc.json", func(c fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "failed to render swagger spec",
			})
		}

		c.Type("json", "utf-8")
		return c.Send(applyDocDefaults([]byte(doc)))
	})
}

func applyDocDefaults(data []byte) []byte {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return data
	}

	info := ensureMap(doc, "info")
	if version := strings.TrimSpace(env.VERSION); version != "" {
		info["version"] = version
	}

	doc["basePath"] = "/"

	encoded, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return data
	}

	if len(encoded) == 0 || encoded[len(encoded)-1] != '\n' {
		encoded = append(encoded, '\n')
	}

	return encoded
}

func ensureMap(root map[string]any, key string) map[string]any {
	val, ok := root[key]
	if ok {
		if existing, ok := val.(map[string]any); ok {
			return existing
		}
	}

	created := map[string]any{}
	root[key] = created
	return created
}
