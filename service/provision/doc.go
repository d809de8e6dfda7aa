// Package provision creates the remote log destination for a job.
//
// Provisioning runs as a saga of three steps: account, logger and bind. Each
// step consumes the result of the previous one; a failing step is reported as
// StepError naming it. Completed steps are not compensated, so a retried
// provisioning reuses the account and logger already stored locally.
package provision
