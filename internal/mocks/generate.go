package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResultsSource --dir ../usecase --output usecase --outpkg usecasemock --filename results_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name HighlightsSource --dir ../usecase --output usecase --outpkg usecasemock --filename highlights_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TextCompleter --dir ../usecase --output usecase --outpkg usecasemock --filename text_completer_mock.go
