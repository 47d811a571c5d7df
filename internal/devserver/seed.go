package devserver

import "github.com/jonathan/jobpilot/internal/types"

// sampleJobs are loaded by SeedJobs. There are more than one page of them so paging can be exercised.
var sampleJobs = []types.CreateJobInput{
	{Title: "Backend Engineer", Company: "Northwind", Location: "Remote", ApplyURL: "https://jobs.example.com/northwind/backend",
		Description: "Build Go microservices on Kubernetes and PostgreSQL. Experience with Kafka, gRPC and Docker is expected; AWS is a plus."},
	{Title: "Senior Frontend Engineer", Company: "Acme", Location: "Berlin", ApplyURL: "https://jobs.example.com/acme/frontend",
		Description: "Own our React and TypeScript web app. You will work with GraphQL, CSS, Tailwind and Figma designs and care about Testing."},
	{Title: "Platform Engineer", Company: "Globex", Location: "London", ApplyURL: "https://jobs.example.com/globex/platform",
		Description: "Run Kubernetes clusters with Terraform and Ansible on Google Cloud. CI/CD pipelines, Prometheus Observability and Linux skills required."},
	{Title: "Data Engineer", Company: "Initech", Location: "Remote", ApplyURL: "https://jobs.example.com/initech/data",
		Description: "Design Data Engineering pipelines with Python, Spark and Airflow. Strong SQL and PostgreSQL, some Kafka experience."},
	{Title: "Full Stack Developer", Company: "Umbrella", Location: "New York", ApplyURL: "https://jobs.example.com/umbrella/fullstack",
		Description: "Node.js and Express APIs with MongoDB, plus a Next.js frontend in TypeScript. Docker and Git daily, Agile team."},
	{Title: "Machine Learning Engineer", Company: "Stark Industries", Location: "San Francisco", ApplyURL: "https://jobs.example.com/stark/ml",
		Description: "Ship Machine Learning models to production with Python, Docker and Kubernetes on AWS. Distributed Systems background welcome."},
	{Title: "Site Reliability Engineer", Company: "Wayne Enterprises", Location: "Remote", ApplyURL: "https://jobs.example.com/wayne/sre",
		Description: "Improve Observability with Prometheus, automate with Go and Terraform, and keep Linux fleets secure. On-call Security mindset."},
	{Title: "Java Developer", Company: "Hooli", Location: "Mountain View", ApplyURL: "https://jobs.example.com/hooli/java",
		Description: "Maintain Java and Spring services backed by MySQL and Redis, with RabbitMQ messaging and REST APIs. Scrum process."},
	{Title: "Mobile Engineer", Company: "Pied Piper", Location: "Palo Alto", ApplyURL: "https://jobs.example.com/piedpiper/mobile",
		Description: "Build native apps in Swift and Kotlin, integrate REST and GraphQL backends, and own release CI/CD."},
	{Title: "Rust Systems Engineer", Company: "Cyberdyne", Location: "Remote", ApplyURL: "https://jobs.example.com/cyberdyne/rust",
		Description: "Write Rust and C++ for low-latency Distributed Systems on Linux. gRPC and Kafka experience helpful."},
	{Title: "Engineering Manager", Company: "Vandelay", Location: "Chicago", ApplyURL: "https://jobs.example.com/vandelay/em",
		Description: "Lead a team of Go and Python engineers. Leadership, Mentoring and Communication skills matter as much as Microservices experience."},
	{Title: "Search Engineer", Company: "Soylent", Location: "Remote", ApplyURL: "https://jobs.example.com/soylent/search",
		Description: "Tune Elasticsearch relevance, build ingestion in Go and Python, and run it on AWS with Docker."},
}

// SeedJobs loads the sample postings into store.
func SeedJobs(store *Store) {
	for _, in := range sampleJobs {
		in.Source = "seed"
		store.AddJob(in)
	}
}
