// Package inferencepb holds the generated code for imageable/v1/inference.proto.
package inferencepb

//go:generate protoc -I .. --go_out=../.. --go_opt=module=github.com/SyedDaiam9101/imageable-service --go-grpc_out=../.. --go-grpc_opt=module=github.com/SyedDaiam9101/imageable-service ../imageable/v1/inference.proto
