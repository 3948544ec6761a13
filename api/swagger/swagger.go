package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Result Portal API",
        "description": "Result lookup by registration number and date of birth",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Results", "description": "Student result lookup"},
        {"name": "Operations", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/check_result": {
            "post": {
                "tags": ["Results"],
                "summary": "Look up a student result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResultPayload"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "CheckResultRequest": {
            "type": "object",
            "required": ["registration_number", "date_of_birth"],
            "properties": {
                "registration_number": {"type": "string"},
                "date_of_birth": {"type": "string", "format": "date"}
            }
        },
        "StudentInfo": {
            "type": "object",
            "properties": {
                "student_name": {"type": "string"},
                "registration_number": {"type": "string"},
                "roll_number": {"type": "string"},
                "course_name": {"type": "string"},
                "semester": {"type": "integer"},
                "academic_year": {"type": "string"},
                "date_of_birth": {"type": "string", "format": "date"}
            }
        },
        "SubjectResult": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "integer"},
                "subject_code": {"type": "string"},
                "subject_name": {"type": "string"},
                "internal_marks": {"type": "number"},
                "external_marks": {"type": "number"},
                "total_marks": {"type": "number"},
                "max_marks": {"type": "number"},
                "grade": {"type": "string"},
                "status": {"type": "string", "enum": ["Pass", "Fail"]}
            }
        },
        "SummaryInfo": {
            "type": "object",
            "properties": {
                "total_obtained": {"type": "number"},
                "total_max": {"type": "number"},
                "percentage": {"type": "number"},
                "grade": {"type": "string"},
                "status": {"type": "string", "enum": ["Pass", "Fail"]}
            }
        },
        "ResultPayload": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/StudentInfo"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/SubjectResult"}},
                "summary": {"$ref": "#/definitions/SummaryInfo"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
