// Package docs holds the OpenAPI document served under /swagger. It is
// regenerated from the handler annotations with:
//
//	swag init -g cmd/server/main.go -o docs --parseDependency --parseInternal
package docs

import "github.com/swaggo/swag/v2"

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
        "/bank-accounts": {
            "post": {
                "description": "Register a bank account for a company of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bank-accounts"
                ],
                "summary": "Create a bank account",
                "operationId": "createBankAccount",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CreateBankAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_BankAccountResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/change-rates": {
            "post": {
                "description": "Register a conversion rate between two currencies",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "change-rates"
                ],
                "summary": "Create a change rate",
                "operationId": "createChangeRate",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateChangeRateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_ChangeRateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "description": "List the tenant rates plus the shared base-currency rate",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "change-rates"
                ],
                "summary": "List change rates",
                "operationId": "listChangeRates",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_document_ChangeRateResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/companies": {
            "post": {
                "description": "Register a company owned by the caller tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "companies"
                ],
                "summary": "Create a company",
                "operationId": "createCompany",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CreateCompanyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_CompanyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "description": "List the tenant root and the companies it owns",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "companies"
                ],
                "summary": "List companies",
                "operationId": "listCompanies",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Search term",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "default": 20,
                        "maximum": 100
                    },
                    {
                        "type": "string",
                        "description": "Sort field",
                        "name": "order_by",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sort direction",
                        "name": "order_dir",
                        "in": "query",
                        "enum": [
                            "asc",
                            "desc"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_company_CompanyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/companies/{id}": {
            "get": {
                "description": "Retrieve one company of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "companies"
                ],
                "summary": "Get company by ID",
                "operationId": "getCompanyById",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Company ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_CompanyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/companies/{id}/bank-accounts": {
            "get": {
                "description": "List the bank accounts registered for a company of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "companies"
                ],
                "summary": "List bank accounts of a company",
                "operationId": "listCompanyBankAccounts",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Company ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_company_BankAccountResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/customers": {
            "post": {
                "description": "Register a company of the tenant as a customer",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "customers"
                ],
                "summary": "Create a customer",
                "operationId": "createCustomer",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CreateCustomerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "description": "List the customers of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "customers"
                ],
                "summary": "List customers",
                "operationId": "listCustomers",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Search term",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "default": 20,
                        "maximum": 100
                    },
                    {
                        "type": "string",
                        "description": "Sort field",
                        "name": "order_by",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sort direction",
                        "name": "order_dir",
                        "in": "query",
                        "enum": [
                            "asc",
                            "desc"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_company_CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/customers/{id}": {
            "get": {
                "description": "Retrieve a customer by its ID",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "customers"
                ],
                "summary": "Get customer by ID",
                "operationId": "getCustomerById",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Customer ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents": {
            "post": {
                "description": "Create an invoice, quote or purchase order. Totals start at zero or follow the listed orders",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Create a document",
                "operationId": "createDocument",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateDocumentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}": {
            "get": {
                "description": "Retrieve a document with its totals",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Get document by ID",
                "operationId": "getDocumentById",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/orders": {
            "put": {
                "description": "Link orders to a document and recompute its totals",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Attach orders",
                "operationId": "attachDocumentOrders",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/document.AttachOrdersRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/orders/{orderId}": {
            "delete": {
                "description": "Unlink one order from a document and recompute its totals",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Detach an order",
                "operationId": "detachDocumentOrder",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "orderId",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/payment-note": {
            "post": {
                "description": "Render the payment instructions of a document and store them on it",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Generate payment note",
                "operationId": "generatePaymentNote",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/document.PaymentNoteRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/rates": {
            "put": {
                "description": "Replace vat, withholding and change rate, then recompute the totals",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Update document rates",
                "operationId": "updateDocumentRates",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/document.UpdateRatesRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/recalculate": {
            "post": {
                "description": "Recompute the totals of a document from its orders and rates",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Recalculate totals",
                "operationId": "recalculateDocument",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/documents/{id}/status": {
            "put": {
                "description": "Move a document to another status",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Update document status",
                "operationId": "updateDocumentStatus",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/document.UpdateStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_DocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Run every registered dependency check and report event bus counters",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "Health check",
                "operationId": "healthCheck",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-handler_HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-handler_HealthResponse"
                        }
                    }
                }
            }
        },
        "/iban/validate": {
            "post": {
                "description": "Check the format and checksum of an IBAN without storing it",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bank-accounts"
                ],
                "summary": "Validate an IBAN",
                "operationId": "validateIban",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CheckIBANRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_IBANCheckResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/orders": {
            "post": {
                "description": "Register an order for a company of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "Create an order",
                "operationId": "createOrder",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_OrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "description": "List the orders of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "List orders",
                "operationId": "listOrders",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Search term",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "default": 20,
                        "maximum": 100
                    },
                    {
                        "type": "string",
                        "description": "Sort field",
                        "name": "order_by",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sort direction",
                        "name": "order_dir",
                        "in": "query",
                        "enum": [
                            "asc",
                            "desc"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_document_OrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "description": "Retrieve an order by its ID",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "Get order by ID",
                "operationId": "getOrderById",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-document_OrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/providers": {
            "post": {
                "description": "Register a company of the tenant as a provider",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "providers"
                ],
                "summary": "Create a provider",
                "operationId": "createProvider",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CreateProviderRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_ProviderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "description": "List the providers of the tenant",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "providers"
                ],
                "summary": "List providers",
                "operationId": "listProviders",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Search term",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query",
                        "default": 20,
                        "maximum": 100
                    },
                    {
                        "type": "string",
                        "description": "Sort field",
                        "name": "order_by",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sort direction",
                        "name": "order_dir",
                        "in": "query",
                        "enum": [
                            "asc",
                            "desc"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-array_company_ProviderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports/cash-flow": {
            "get": {
                "description": "Group invoice totals by month for the period",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Cash-flow report",
                "operationId": "getCashFlow",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Period start",
                        "name": "start_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Period end",
                        "name": "end_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Invoice side",
                        "name": "direction",
                        "in": "query",
                        "enum": [
                            "sales",
                            "purchases",
                            "all"
                        ],
                        "default": "all"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-report_CashFlowReport"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports/cash-flow/export": {
            "get": {
                "description": "Archive the cash-flow report as CSV and return a presigned download link",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Export cash-flow report",
                "operationId": "exportCashFlow",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Period start",
                        "name": "start_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Period end",
                        "name": "end_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Invoice side",
                        "name": "direction",
                        "in": "query",
                        "enum": [
                            "sales",
                            "purchases",
                            "all"
                        ],
                        "default": "all"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-report_ExportResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports/cash-flow/parties": {
            "get": {
                "description": "Group invoice totals by month and counterparty for the period",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Cash-flow report by party",
                "operationId": "getCashFlowByParty",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Period start",
                        "name": "start_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Period end",
                        "name": "end_date",
                        "in": "query",
                        "required": true,
                        "format": "date"
                    },
                    {
                        "type": "string",
                        "description": "Invoice side",
                        "name": "direction",
                        "in": "query",
                        "enum": [
                            "sales",
                            "purchases",
                            "all"
                        ],
                        "default": "all"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-report_CashFlowByPartyReport"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports/pending": {
            "get": {
                "description": "Sum the unpaid invoices of the tenant per side",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Pending payments report",
                "operationId": "getPendingPayments",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-report_PendingReport"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tenants": {
            "post": {
                "description": "Register a root company. Its ID becomes the tenant ID of everything it owns",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tenants"
                ],
                "summary": "Create a tenant",
                "operationId": "createTenant",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID when JWT auth is disabled",
                        "name": "X-Tenant-ID",
                        "in": "header"
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/company.CreateCompanyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.APIResponse-company_CompanyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "company.AddressRequest": {
            "type": "object",
            "properties": {
                "street": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "province": {
                    "type": "string"
                },
                "postal_code": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                }
            },
            "required": [
                "street",
                "city"
            ]
        },
        "company.BankAccountResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "iban": {
                    "type": "string"
                },
                "formatted_iban": {
                    "type": "string"
                },
                "holder": {
                    "type": "string"
                },
                "branch": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "company.CheckIBANRequest": {
            "type": "object",
            "properties": {
                "iban": {
                    "type": "string"
                }
            },
            "required": [
                "iban"
            ]
        },
        "company.CompanyResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "owner_company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "is_root": {
                    "type": "boolean"
                },
                "legal_name": {
                    "type": "string"
                },
                "commercial_name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "vat_number": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "$ref": "#/definitions/valueobject.Address"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "company.CreateBankAccountRequest": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "iban": {
                    "type": "string"
                },
                "holder": {
                    "type": "string"
                },
                "branch": {
                    "type": "string"
                }
            },
            "required": [
                "company_id",
                "iban"
            ]
        },
        "company.CreateCompanyRequest": {
            "type": "object",
            "properties": {
                "legal_name": {
                    "type": "string"
                },
                "commercial_name": {
                    "type": "string"
                },
                "vat_number": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "$ref": "#/definitions/company.AddressRequest"
                }
            },
            "required": [
                "legal_name",
                "vat_number"
            ]
        },
        "company.CreateCustomerRequest": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "due_days": {
                    "type": "integer"
                },
                "pay_method": {
                    "type": "string",
                    "enum": [
                        "TRANSFER",
                        "CASH",
                        "CARD",
                        "DIRECT_DEBIT",
                        "CHECK"
                    ]
                }
            },
            "required": [
                "company_id"
            ]
        },
        "company.CreateProviderRequest": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                }
            },
            "required": [
                "company_id"
            ]
        },
        "company.CustomerResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "owner_company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "legal_name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "vat_number": {
                    "type": "string"
                },
                "due_days": {
                    "type": "integer"
                },
                "pay_method": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "company.IBANCheckResponse": {
            "type": "object",
            "properties": {
                "iban": {
                    "type": "string"
                },
                "valid": {
                    "type": "boolean"
                },
                "normalized": {
                    "type": "string"
                },
                "formatted": {
                    "type": "string"
                }
            }
        },
        "company.ProviderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "owner_company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "legal_name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "vat_number": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "document.AttachOrdersRequest": {
            "type": "object",
            "properties": {
                "order_ids": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                }
            },
            "required": [
                "order_ids"
            ]
        },
        "document.ChangeRateResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer",
                    "format": "int64"
                },
                "owner_company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "currency1": {
                    "type": "string"
                },
                "currency2": {
                    "type": "string"
                },
                "rate": {
                    "type": "string",
                    "example": "0"
                },
                "date": {
                    "type": "string",
                    "format": "date-time"
                },
                "is_base": {
                    "type": "boolean"
                }
            }
        },
        "document.DocumentResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "doc_number": {
                    "type": "string"
                },
                "doc_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "deadline": {
                    "type": "string",
                    "format": "date-time"
                },
                "vat_rate": {
                    "type": "string",
                    "example": "0"
                },
                "withholding": {
                    "type": "string",
                    "example": "0"
                },
                "change_rate_id": {
                    "type": "integer",
                    "format": "int64"
                },
                "order_ids": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                },
                "totals": {
                    "$ref": "#/definitions/document.TotalsResponse"
                },
                "note_payment": {
                    "type": "string"
                },
                "version": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "document.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "total": {
                    "type": "string",
                    "example": "0"
                },
                "order_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "document.PaymentNoteRequest": {
            "type": "object",
            "properties": {
                "bank_account_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "locale": {
                    "type": "string"
                }
            }
        },
        "document.TotalsResponse": {
            "type": "object",
            "properties": {
                "total_net": {
                    "type": "string",
                    "example": "0"
                },
                "total_vat": {
                    "type": "string",
                    "example": "0"
                },
                "total_withholding": {
                    "type": "string",
                    "example": "0"
                },
                "total_gross": {
                    "type": "string",
                    "example": "0"
                },
                "total_to_pay": {
                    "type": "string",
                    "example": "0"
                },
                "total_gross_in_currency2": {
                    "type": "string",
                    "example": "0"
                },
                "total_to_pay_in_currency2": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "document.UpdateRatesRequest": {
            "type": "object",
            "properties": {
                "vat_rate": {
                    "type": "string",
                    "example": "0"
                },
                "withholding": {
                    "type": "string",
                    "example": "0"
                },
                "change_rate_id": {
                    "type": "integer",
                    "format": "int64"
                }
            }
        },
        "document.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "ACCEPTED",
                        "MODIFIED",
                        "PAID",
                        "REJECTED"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string",
                    "format": "date-time"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ValidationDetail"
                    }
                }
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.APIResponse-array_company_BankAccountResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/company.BankAccountResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-array_company_CompanyResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/company.CompanyResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-array_company_CustomerResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/company.CustomerResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-array_company_ProviderResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/company.ProviderResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-array_document_ChangeRateResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/document.ChangeRateResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-array_document_OrderResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/document.OrderResponse"
                    }
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-company_BankAccountResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/company.BankAccountResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-company_CompanyResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/company.CompanyResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-company_CustomerResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/company.CustomerResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-company_IBANCheckResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/company.IBANCheckResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-company_ProviderResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/company.ProviderResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-document_ChangeRateResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/document.ChangeRateResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-document_DocumentResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/document.DocumentResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-document_OrderResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/document.OrderResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-handler_HealthResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.HealthResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-report_CashFlowByPartyReport": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/report.CashFlowByPartyReport"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-report_CashFlowReport": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/report.CashFlowReport"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-report_ExportResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/report.ExportResponse"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.APIResponse-report_PendingReport": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/report.PendingReport"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.CreateChangeRateRequest": {
            "type": "object",
            "properties": {
                "currency1": {
                    "type": "string"
                },
                "currency2": {
                    "type": "string"
                },
                "rate": {
                    "type": "string",
                    "example": "0"
                },
                "date": {
                    "type": "string"
                }
            },
            "required": [
                "currency1",
                "currency2",
                "date"
            ]
        },
        "handler.CreateDocumentRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "enum": [
                        "INV_CUSTOMER",
                        "INV_PROVIDER",
                        "QUOTE",
                        "PURCHASE_ORDER"
                    ]
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "doc_number": {
                    "type": "string"
                },
                "doc_date": {
                    "type": "string"
                },
                "deadline": {
                    "type": "string"
                },
                "vat_rate": {
                    "type": "string",
                    "example": "0"
                },
                "withholding": {
                    "type": "string",
                    "example": "0"
                },
                "change_rate_id": {
                    "type": "integer",
                    "format": "int64"
                },
                "order_ids": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "format": "uuid"
                    }
                }
            },
            "required": [
                "type",
                "company_id",
                "doc_number",
                "doc_date"
            ]
        },
        "handler.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "total": {
                    "type": "string",
                    "example": "0"
                },
                "order_date": {
                    "type": "string"
                }
            },
            "required": [
                "company_id",
                "reference",
                "order_date"
            ]
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                }
            }
        },
        "handler.EventCounters": {
            "type": "object",
            "properties": {
                "published": {
                    "type": "integer",
                    "format": "int64"
                },
                "failed": {
                    "type": "integer",
                    "format": "int64"
                }
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "go_version": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "checks": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "events": {
                    "$ref": "#/definitions/handler.EventCounters"
                }
            }
        },
        "report.CashFlowByPartyReport": {
            "type": "object",
            "properties": {
                "range": {
                    "$ref": "#/definitions/report.DateRange"
                },
                "grand_total_net": {
                    "type": "string",
                    "example": "0"
                },
                "parties": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.PartyCashFlow"
                    }
                }
            }
        },
        "report.CashFlowReport": {
            "type": "object",
            "properties": {
                "range": {
                    "$ref": "#/definitions/report.DateRange"
                },
                "grand_total_net": {
                    "type": "string",
                    "example": "0"
                },
                "average_net_per_month": {
                    "type": "string",
                    "example": "0"
                },
                "months": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.MonthlyCashFlow"
                    }
                }
            }
        },
        "report.DateRange": {
            "type": "object",
            "properties": {
                "start_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "end_date": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "report.ExportResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "download_url": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "rows": {
                    "type": "integer"
                }
            }
        },
        "report.InvoiceSummary": {
            "type": "object",
            "properties": {
                "id_document": {
                    "type": "string",
                    "format": "uuid"
                },
                "type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "com_name": {
                    "type": "string"
                },
                "doc_number": {
                    "type": "string"
                },
                "doc_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "deadline": {
                    "type": "string",
                    "format": "date-time"
                },
                "total_net": {
                    "type": "string",
                    "example": "0"
                },
                "total_vat": {
                    "type": "string",
                    "example": "0"
                },
                "total_withholding": {
                    "type": "string",
                    "example": "0"
                },
                "total_to_pay": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "report.MonthlyCashFlow": {
            "type": "object",
            "properties": {
                "period": {
                    "$ref": "#/definitions/report.Period"
                },
                "net_total": {
                    "type": "string",
                    "example": "0"
                },
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.InvoiceSummary"
                    }
                }
            }
        },
        "report.PartyCashFlow": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string",
                    "format": "uuid"
                },
                "legal_name": {
                    "type": "string"
                },
                "total_net": {
                    "type": "string",
                    "example": "0"
                },
                "total_vat": {
                    "type": "string",
                    "example": "0"
                },
                "total_withholding": {
                    "type": "string",
                    "example": "0"
                },
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.PartyInvoiceLine"
                    }
                }
            }
        },
        "report.PartyInvoiceLine": {
            "type": "object",
            "properties": {
                "id_document": {
                    "type": "string",
                    "format": "uuid"
                },
                "doc_number": {
                    "type": "string"
                },
                "doc_date": {
                    "type": "string"
                },
                "total_net": {
                    "type": "string",
                    "example": "0"
                },
                "total_vat": {
                    "type": "string",
                    "example": "0"
                },
                "total_withholding": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "report.PendingLine": {
            "type": "object",
            "properties": {
                "id_document": {
                    "type": "string",
                    "format": "uuid"
                },
                "com_name": {
                    "type": "string"
                },
                "doc_number": {
                    "type": "string"
                },
                "deadline": {
                    "type": "string",
                    "format": "date-time"
                },
                "total_to_pay": {
                    "type": "string",
                    "example": "0"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "report.PendingMonth": {
            "type": "object",
            "properties": {
                "period": {
                    "$ref": "#/definitions/report.Period"
                },
                "monthly_total": {
                    "type": "string",
                    "example": "0"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.PendingLine"
                    }
                }
            }
        },
        "report.PendingReport": {
            "type": "object",
            "properties": {
                "grand_total": {
                    "type": "string",
                    "example": "0"
                },
                "months": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.PendingMonth"
                    }
                },
                "unscheduled": {
                    "$ref": "#/definitions/report.UnscheduledPending"
                }
            }
        },
        "report.Period": {
            "type": "object",
            "properties": {
                "year": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                }
            }
        },
        "report.UnscheduledPending": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "string",
                    "example": "0"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/report.PendingLine"
                    }
                }
            }
        },
        "valueobject.Address": {
            "type": "object",
            "properties": {
                "street": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "province": {
                    "type": "string"
                },
                "postal_code": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Invoicing API",
	Description:      "Multi-tenant invoicing API: companies, orders, documents, totals and cash-flow reports",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
