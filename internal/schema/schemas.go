package schema

// payloadSchemas holds the JSON Schema source for every request body the API
// accepts. Keys are the kind names handlers pass to Validate.
var payloadSchemas = map[string]string{
	"register": `{
		"type": "object",
		"required": ["username", "email", "password"],
		"properties": {
			"username": {"type": "string", "minLength": 3, "maxLength": 50},
			"email": {"type": "string", "format": "email", "maxLength": 255},
			"password": {"type": "string", "minLength": 8, "maxLength": 128}
		}
	}`,

	"profile": `{
		"type": "object",
		"required": ["name", "last_name"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 50},
			"last_name": {"type": "string", "minLength": 1, "maxLength": 50},
			"current_title": {"type": ["string", "null"], "maxLength": 100},
			"bio_summary": {"type": ["string", "null"], "maxLength": 2000},
			"location": {"type": ["string", "null"], "maxLength": 100},
			"phone": {"type": ["string", "null"], "maxLength": 30},
			"photo_url": {"type": ["string", "null"], "maxLength": 300},
			"profile": {"type": ["string", "null"], "maxLength": 5000},
			"cv_url": {"type": ["string", "null"], "maxLength": 300}
		}
	}`,

	"technology": `{
		"type": "object",
		"required": ["name", "category"],
		"properties": {
			"name": {"type": "string", "minLength": 2, "maxLength": 50},
			"category": {"enum": ["FRONTEND", "BACKEND", "DATABASE", "DEVOPS", "MOBILE", "TOOL", "OTHER"]},
			"icon_url": {"type": ["string", "null"], "maxLength": 300}
		}
	}`,

	"project": `{
		"type": "object",
		"required": ["title", "category"],
		"properties": {
			"title": {"type": "string", "minLength": 2, "maxLength": 100},
			"category": {"enum": ["WEB", "MOBILE", "DESKTOP", "API", "DATA_SCIENCE", "MACHINE_LEARNING", "BLOCKCHAIN", "IOT", "GAME", "OTHER"]},
			"description": {"type": ["string", "null"], "maxLength": 2000},
			"thumbnail_url": {"type": ["string", "null"], "maxLength": 300},
			"live_url": {"type": ["string", "null"], "maxLength": 300},
			"repo_url": {"type": ["string", "null"], "maxLength": 300},
			"featured": {"type": "boolean"},
			"work_experience_id": {"type": ["integer", "null"]},
			"technology_ids": {"type": "array", "items": {"type": "integer"}},
			"previews": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["image_url"],
					"properties": {
						"image_url": {"type": "string", "minLength": 1, "maxLength": 300},
						"caption": {"type": ["string", "null"], "maxLength": 200},
						"order": {"type": "integer", "minimum": 0}
					}
				}
			}
		}
	}`,

	"experience": `{
		"type": "object",
		"required": ["job_title", "company", "start_date"],
		"properties": {
			"job_title": {"type": "string", "minLength": 1, "maxLength": 100},
			"company": {"type": "string", "minLength": 1, "maxLength": 100},
			"location": {"type": ["string", "null"], "maxLength": 100},
			"start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
			"end_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
			"description": {"type": ["string", "null"], "maxLength": 2000}
		}
	}`,

	"client": `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 100},
			"company": {"type": ["string", "null"], "maxLength": 100},
			"feedback": {"type": ["string", "null"], "maxLength": 2000},
			"client_photo_url": {"type": ["string", "null"], "maxLength": 300},
			"project_link": {"type": ["string", "null"], "maxLength": 300}
		}
	}`,

	"social": `{
		"type": "object",
		"required": ["platform", "url"],
		"properties": {
			"platform": {"type": "string", "minLength": 1, "maxLength": 50},
			"url": {"type": "string", "pattern": "^[Hh][Tt][Tt][Pp][Ss]?://", "maxLength": 300},
			"icon_name": {"type": ["string", "null"], "maxLength": 50},
			"order": {"type": "integer", "minimum": 0, "maximum": 99}
		}
	}`,
}
