// Package main objgate API
//
//	@title			objgate API
//	@version		1.0
//	@description	REST gateway over S3-compatible object storage with presigned transfers
//
//	@license.name	Proprietary
//
//	@host			localhost:8080
//	@BasePath		/api
//
//	@tag.name			Buckets
//	@tag.description	Bucket management
//
//	@tag.name			Objects
//	@tag.description	Direct object operations
//
//	@tag.name			Presigned
//	@tag.description	Transfers through presigned URLs
package main
