package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Greedy weekly lecture timetable generator",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Timetable generation and retrieval"},
        {"name": "Reference", "description": "Scheduling reference data"}
    ],
    "paths": {
        "/generate-timetable": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate the weekly timetable",
                "description": "Wipes the stored timetable and schedules the posted lecture demand rows. Unfulfilled rows are returned in skippedSlots.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/LectureRequest"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the stored timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export the stored timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "description": "Export format, default csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reference-data": {
            "get": {
                "tags": ["Reference"],
                "summary": "Get scheduling reference data",
                "description": "Returns faculty, rooms, sections and timeslots in one payload.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LectureRequest": {
            "type": "object",
            "properties": {
                "subjectName": {"type": "string"},
                "sectionId": {"type": "integer"},
                "duration": {"type": "integer", "description": "Consecutive hours per session (1 or 2)"},
                "frequency": {"type": "integer", "description": "Sessions per week; above one forces distinct days"},
                "facultyIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "SkippedSlot": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "subject": {"type": "string"},
                "section": {"type": "string"},
                "partnerSection": {"type": "string"},
                "faculty": {"type": "string"},
                "remaining": {"type": "integer"},
                "reason": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "status": {"type": "integer"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Spec variables.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Timetable API",
	Description:      "Greedy weekly lecture timetable generator",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
