package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Club San Martin API",
        "description": "Court booking and sports practice management for the club portal",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Slots", "description": "Half-hour slot generation and availability"},
        {"name": "Rentals", "description": "Member court rentals"},
        {"name": "Practices", "description": "Trainer-led recurring practices"},
        {"name": "Courts", "description": "Court inventory and weekly schedules"},
        {"name": "Members", "description": "Member administration"},
        {"name": "Trainers", "description": "Trainer roster"},
        {"name": "Families", "description": "Family plans"},
        {"name": "Enrollments", "description": "Practice enrollments"}
    ],
    "paths": {
        "/slots/generate": {
            "post": {
                "tags": ["Slots"],
                "summary": "Generate slots for a date range",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "List slots of a court on a date",
                "parameters": [
                    {"name": "courtId", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "state", "in": "query", "type": "string", "enum": ["FREE", "RENTED", "PRACTICE", "MAINTENANCE"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots/sheet": {
            "get": {
                "tags": ["Slots"],
                "summary": "Export a printable slot sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courtId", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/rentals": {
            "get": {
                "tags": ["Rentals"],
                "summary": "List rentals",
                "parameters": [
                    {"name": "memberId", "in": "query", "type": "string"},
                    {"name": "state", "in": "query", "type": "string", "enum": ["RESERVED", "CANCELLED", "COMPLETED"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rentals"],
                "summary": "Reserve a contiguous block of slots",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReserveRentalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot unavailable or block not contiguous", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rentals/{id}": {
            "get": {
                "tags": ["Rentals"],
                "summary": "Fetch one rental",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rentals/{id}/cancel": {
            "put": {
                "tags": ["Rentals"],
                "summary": "Cancel a reserved rental",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/CancelRentalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already cancelled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/practices": {
            "get": {
                "tags": ["Practices"],
                "summary": "List practices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Practices"],
                "summary": "Create a practice",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePracticeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Trainer or court overlap", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/practices/{id}": {
            "get": {
                "tags": ["Practices"],
                "summary": "Fetch one practice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Practices"],
                "summary": "Update a practice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Practices"],
                "summary": "Delete a practice and free its slots",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Freed slot report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts": {
            "get": {
                "tags": ["Courts"],
                "summary": "List courts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courts"],
                "summary": "Register a court",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourtRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts/{id}": {
            "put": {
                "tags": ["Courts"],
                "summary": "Update a court",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourtRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courts"],
                "summary": "Delete a court",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Court still hosts practices", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/members": {
            "get": {
                "tags": ["Members"],
                "summary": "List members",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "planType", "in": "query", "type": "string", "enum": ["INDIVIDUAL", "FAMILIAR"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["ACTIVE", "INACTIVE", "BLOCKED"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Members"],
                "summary": "Register a member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMemberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll a member in a practice",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateSlotsRequest": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string", "example": "2025-06-02"},
                "endDate": {"type": "string", "example": "2025-06-08"}
            },
            "required": ["startDate", "endDate"]
        },
        "ReserveRentalRequest": {
            "type": "object",
            "properties": {
                "memberId": {"type": "string"},
                "courtId": {"type": "string"},
                "date": {"type": "string", "example": "2025-06-02"},
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RentalSlotRequest"}
                }
            },
            "required": ["memberId", "courtId", "date", "slots"]
        },
        "RentalSlotRequest": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string", "example": "18:00"},
                "endTime": {"type": "string", "example": "18:30"}
            },
            "required": ["startTime", "endTime"]
        },
        "CancelRentalRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "SavePracticeRequest": {
            "type": "object",
            "properties": {
                "sport": {"type": "string", "enum": ["FUTBOL", "BASQUET", "NATACION", "HANDBALL"]},
                "courtId": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "price": {"type": "number"},
                "trainerIds": {"type": "array", "items": {"type": "string"}},
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/PracticeScheduleRequest"}
                }
            },
            "required": ["sport", "courtId", "startDate", "endDate", "schedules"]
        },
        "PracticeScheduleRequest": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "string", "example": "LUNES"},
                "startTime": {"type": "string", "example": "18:00"},
                "endTime": {"type": "string", "example": "19:00"}
            },
            "required": ["dayOfWeek", "startTime", "endTime"]
        },
        "CreateCourtRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sports": {"type": "array", "items": {"type": "string"}},
                "indoor": {"type": "boolean"},
                "capacity": {"type": "integer"},
                "hourlyPrice": {"type": "number"},
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourtScheduleRequest"}
                }
            },
            "required": ["name", "sports", "capacity", "hourlyPrice", "schedules"]
        },
        "UpdateCourtRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sports": {"type": "array", "items": {"type": "string"}},
                "indoor": {"type": "boolean"},
                "capacity": {"type": "integer"},
                "hourlyPrice": {"type": "number"},
                "active": {"type": "boolean"},
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourtScheduleRequest"}
                }
            }
        },
        "CourtScheduleRequest": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "string", "example": "LUNES"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "22:00"},
                "available": {"type": "boolean"}
            },
            "required": ["dayOfWeek", "startTime", "endTime"]
        },
        "CreateMemberRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "dni": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "planType": {"type": "string", "enum": ["INDIVIDUAL", "FAMILIAR"]},
                "familyId": {"type": "string"}
            },
            "required": ["firstName", "lastName", "dni", "email", "planType"]
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "memberId": {"type": "string"},
                "practiceId": {"type": "string"}
            },
            "required": ["memberId", "practiceId"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
