package api

// @title Provision Intelligence Hub API
// @version v1.0.0
// @description Searchable, sortable and filterable views over provisioning records: services, service groups, clusters, cluster members and ABCD sets.

// @host localhost:8778
// @BasePath /api
// @schemes http
