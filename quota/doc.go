// Package quota tracks per-user token and cost usage against
// tier-based monthly limits, backed by SQLite.
//
// A [Manager] owns the database: user_quotas holds each user's running
// totals and billing-period reset date, usage_history records every
// dispatched call. Manager implements llmrouter.QuotaRecorder, so a
// router built with llmrouter.WithQuota checks limits before dispatch
// and records usage after it.
package quota
