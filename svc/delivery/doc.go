// Package delivery fans one rendered message out to a list of recipients.
//
// Sends are sequential by default with Config.Interval between consecutive
// calls. Setting Config.Concurrency above one lets up to MaxConcurrency sends
// overlap while starts stay spaced by the same interval. Either way a failed
// recipient is recorded in Result.Errors in input order and the batch
// continues.
package delivery
