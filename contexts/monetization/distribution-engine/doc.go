// Package distributionengine contains the monthly revenue distribution
// engine: premium usage aggregation, pool calculation, proportional
// allocation with the high-performance bonus, and the transactional
// recorder that emits earnings, revenue, payout and run-log rows.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package distributionengine
