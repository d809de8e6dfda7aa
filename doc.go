// Package thurgood provides a job dispatcher that matches submitted jobs to
// available worker servers.
//
// A job is submitted by atomically reserving a server that supports the job
// language on the job platform, marking the job submitted and publishing a
// dispatch message onto the work queue. Completing the job returns its server
// to the available pool. Stores and the work queue are pluggable: in-memory
// vendors serve tests and single-process deployments, afs-backed vendors
// persist JSON documents on any afs URL.
//
// End-users typically interact with the dispatcher via the Service façade
// exposed by the root package:
//
//	srv, _ := thurgood.New(ctx)
//	jobs := srv.Lifecycle()
//	job, _ := jobs.Create(ctx, &model.Job{Language: "Java", Platform: "Heroku"})
//	result, err := jobs.Submit(ctx, job.ID)
//
// The same operations are served over HTTP by Service.Handler.
package thurgood
