package config

import "github.com/naka-gawa/project-pulse/internal/domain"

func r(owner, name string) domain.RepoIdentifier {
	return domain.RepoIdentifier{Owner: owner, Name: name}
}

const otel = "open-telemetry"

// defaultProjects are the main repositories reported on when no config file overrides them.
var defaultProjects = []domain.RepoIdentifier{
	r(otel, "opentelemetry-specification"),
	r(otel, "opentelemetry-proto"),
	r(otel, "opentelemetry-collector"),
	r(otel, "opentelemetry-collector-contrib"),
	r(otel, "opentelemetry-operator"),
	r(otel, "opentelemetry-demo"),
	r(otel, "opentelemetry.io"),
}

// defaultSDKs are grouped by language; groups are reported in this order.
var defaultSDKs = []domain.LanguageGroup{
	{Language: "Go", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-go"), r(otel, "opentelemetry-go-contrib")}},
	{Language: "Java", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-java"), r(otel, "opentelemetry-java-instrumentation")}},
	{Language: "Python", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-python"), r(otel, "opentelemetry-python-contrib")}},
	{Language: "JavaScript", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-js"), r(otel, "opentelemetry-js-contrib")}},
	{Language: ".NET", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-dotnet"), r(otel, "opentelemetry-dotnet-contrib")}},
	{Language: "Rust", Repos: []domain.RepoIdentifier{r(otel, "opentelemetry-rust")}},
}

var defaultTags = []string{
	"open-telemetry",
	"opentelemetry-collector",
	"opentelemetry-java",
	"opentelemetry-python",
	"opentelemetry-js",
}
