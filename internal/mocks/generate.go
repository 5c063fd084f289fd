package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/groupforecast --output domain/groupforecast --outpkg groupforecastmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/thirdplace --output domain/thirdplace --outpkg thirdplacemock --filename repository_mock.go
