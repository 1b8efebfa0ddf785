// Package domain contains the entities shared by the discovery workflow, the
// backend client and the transports: form input, generated and verified
// emails, per-domain progress, accounts and generation history. The types are
// free of infrastructure concerns and their JSON tags follow the backend API.
package domain
