// Package docs registers the Swagger 2.0 description served at /swagger.
// Keep it in step with the godoc annotations on the controllers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/courses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin - Courses"],
                "summary": "(Admin) List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CourseSummaryDTO"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Upload a PDF whose text becomes the question synthesis source for the course.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Admin - Courses"],
                "summary": "(Admin) Upload a course document",
                "parameters": [
                    {"type": "string", "description": "Course name", "name": "name", "in": "formData", "required": true},
                    {"type": "file", "description": "Course PDF", "name": "pdf", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Course created", "schema": {"$ref": "#/definitions/dto.CourseUploadResponse"}},
                    "400": {"description": "Missing name or file, or unreadable PDF", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/admin/courses/{course_id}/document": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["Admin - Courses"],
                "summary": "(Admin) Download a course's uploaded PDF",
                "parameters": [
                    {"type": "integer", "description": "Course ID", "name": "course_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Course PDF", "schema": {"type": "file"}},
                    "400": {"description": "Invalid course ID", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Course or document not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes/generate": {
            "post": {
                "description": "Binds up to 10 questions from the course's bank at the given difficulty, synthesizing new questions from the course text when the bank is short.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Quizzes"],
                "summary": "(User) Generate a quiz for a course",
                "parameters": [
                    {"description": "Course and difficulty (easy, medium, hard)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}}
                ],
                "responses": {
                    "201": {"description": "Quiz created", "schema": {"$ref": "#/definitions/dto.GenerateQuizResponse"}},
                    "400": {"description": "Invalid request or empty course text", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "No questions could be synthesized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quiz_id}": {
            "get": {
                "description": "Returns the quiz questions in bound order. Correct answers are not included.",
                "produces": ["application/json"],
                "tags": ["User - Quizzes"],
                "summary": "(User) Get a quiz",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quiz_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizResponseDTO"}},
                    "400": {"description": "Invalid Quiz ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Quiz not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quiz_id}/submit": {
            "post": {
                "description": "Scores the submission by exact match against each question's correct answer and records the attempt. user_id is optional.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Quizzes"],
                "summary": "(User) Submit answers for a quiz",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quiz_id", "in": "path", "required": true},
                    {"description": "Answers", "name": "submission", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitQuizRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SubmitQuizResponse"}},
                    "400": {"description": "Empty submission or invalid body", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Quiz not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quiz_id}/attempts": {
            "get": {
                "description": "Newest first. Filtered to one taker when user_id is given.",
                "produces": ["application/json"],
                "tags": ["User - Quizzes"],
                "summary": "(User) List attempts for a quiz",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quiz_id", "in": "path", "required": true},
                    {"type": "string", "description": "Taker identity", "name": "user_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AttemptDTO"}}},
                    "400": {"description": "Invalid Quiz ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Quiz not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/payments/create": {
            "post": {
                "description": "Creates a payment intent at the configured processor and records a pending transaction. Amount is in major currency units.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Payments"],
                "summary": "(User) Start a payment",
                "parameters": [
                    {"description": "Amount, type (one-time or subscription), optional course and user", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreatePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreatePaymentResponse"}},
                    "400": {"description": "Invalid amount or type", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Payment processor error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/payments/confirm": {
            "post": {
                "description": "Reconciles a pending transaction with the processor once. A payment the processor did not settle is reported with status 400 and the failed record.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Payments"],
                "summary": "(User) Confirm a payment",
                "parameters": [
                    {"description": "Payment ID", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ConfirmPaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Payment succeeded", "schema": {"$ref": "#/definitions/dto.ConfirmPaymentResponse"}},
                    "400": {"description": "Payment failed", "schema": {"$ref": "#/definitions/dto.ConfirmPaymentResponse"}},
                    "404": {"description": "Payment not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Payment processor error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/payments/history": {
            "get": {
                "description": "Newest first. Filtered to one user when user_id is given.",
                "produces": ["application/json"],
                "tags": ["User - Payments"],
                "summary": "(User) List payments",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionDTO"}}},
                    "400": {"description": "Invalid User ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/payments/invoice/{payment_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User - Payments"],
                "summary": "(User) Get an invoice",
                "parameters": [
                    {"type": "integer", "description": "Payment ID", "name": "payment_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceDTO"}},
                    "400": {"description": "Invalid Payment ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Payment not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "dto.CourseUploadResponse": {
            "type": "object",
            "properties": {"course_id": {"type": "integer"}}
        },
        "dto.CourseSummaryDTO": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "text_length": {"type": "integer"}
            }
        },
        "dto.GenerateQuizRequest": {
            "type": "object",
            "required": ["course_id", "difficulty"],
            "properties": {
                "course_id": {"type": "integer"},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]}
            }
        },
        "dto.GenerateQuizResponse": {
            "type": "object",
            "properties": {
                "question_count": {"type": "integer"},
                "quiz_id": {"type": "integer"}
            }
        },
        "dto.QuizQuestionDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question_text": {"type": "string"}
            }
        },
        "dto.QuizResponseDTO": {
            "type": "object",
            "properties": {
                "course_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "difficulty": {"type": "string"},
                "id": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizQuestionDTO"}}
            }
        },
        "dto.SubmittedAnswerDTO": {
            "type": "object",
            "properties": {
                "question_id": {"type": "integer"},
                "selected_answer": {"type": "string"}
            }
        },
        "dto.SubmitQuizRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "array", "items": {"$ref": "#/definitions/dto.SubmittedAnswerDTO"}},
                "user_id": {"type": "string"}
            }
        },
        "dto.AttemptDTO": {
            "type": "object",
            "properties": {
                "answers": {"type": "array", "items": {"$ref": "#/definitions/dto.SubmittedAnswerDTO"}},
                "completed_at": {"type": "string"},
                "id": {"type": "integer"},
                "quiz_id": {"type": "integer"},
                "score": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "dto.SubmitQuizResponse": {
            "type": "object",
            "properties": {
                "attempt_id": {"type": "integer"},
                "score": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "dto.CreatePaymentRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "course_id": {"type": "integer"},
                "type": {"type": "string", "enum": ["one-time", "subscription"]},
                "user_id": {"type": "integer"}
            }
        },
        "dto.CreatePaymentResponse": {
            "type": "object",
            "properties": {
                "client_secret": {"type": "string"},
                "payment_id": {"type": "integer"}
            }
        },
        "dto.ConfirmPaymentRequest": {
            "type": "object",
            "required": ["payment_id"],
            "properties": {"payment_id": {"type": "integer"}}
        },
        "dto.TransactionDTO": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "course_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "currency": {"type": "string"},
                "external_intent_id": {"type": "string"},
                "id": {"type": "integer"},
                "provider": {"type": "string"},
                "status": {"type": "string"},
                "type": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "dto.ConfirmPaymentResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "payment": {"$ref": "#/definitions/dto.TransactionDTO"},
                "succeeded": {"type": "boolean"}
            }
        },
        "dto.InvoiceDTO": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "currency": {"type": "string"},
                "date": {"type": "string"},
                "external_intent_id": {"type": "string"},
                "payment_id": {"type": "integer"},
                "status": {"type": "string"},
                "type": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Course Quiz API",
	Description:      "Course document upload, multiple-choice quiz synthesis and scoring, and payment intents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
