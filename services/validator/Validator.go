// Package validator checks transactions against the previous outputs they spend.
//
// Every input script is run through the script engine on its own goroutine, the
// number of concurrent verifications is bounded by the validator settings. A
// failing input marks the transaction invalid but the remaining inputs are still
// evaluated, so the result does not depend on scheduling.
package validator

import (
	"context"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/script"
	"github.com/bsv-blockchain/litenode/settings"
	"github.com/bsv-blockchain/litenode/sigcheck"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/bsv-blockchain/litenode/util"
	"github.com/dolthub/swiss"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const (
	ReasonInvalidScript      = "Invalid script!"
	ReasonMissingPreviousTx  = "previous transaction doesn't exist yet"
	ReasonNoInputs           = "transaction has no inputs"
	ReasonNoOutputs          = "transaction has no outputs"
	ReasonStoreFailure       = "unable to read the chain store"
	reasonLabelInvalidScript = "script"
	reasonLabelMissingPrevTx = "missing_prev_tx"
	reasonLabelMalformed     = "malformed"
	reasonLabelStore         = "store"
)

type Validator struct {
	logger   ulogger.Logger
	settings *settings.Settings
	store    blockchain_store.ChainStore
	engine   *script.Engine
	checkers sigcheck.Factory
}

// New creates a transaction validator that reads previous transactions from
// store and verifies signatures with hashes from provider.
func New(logger ulogger.Logger, tSettings *settings.Settings, store blockchain_store.ChainStore, provider hashing.Provider) (*Validator, error) {
	if tSettings == nil {
		return nil, errors.NewConfigurationError("validator: settings are nil")
	}

	if store == nil {
		return nil, errors.NewConfigurationError("validator: chain store is nil")
	}

	if provider == nil {
		return nil, errors.NewConfigurationError("validator: hash provider is nil")
	}

	engine, err := script.NewEngine(provider, script.OptionsFromPolicy(tSettings.Policy))
	if err != nil {
		return nil, errors.NewConfigurationError("validator: unable to create script engine", err)
	}

	initPrometheusMetrics()

	return &Validator{
		logger:   logger,
		settings: tSettings,
		store:    store,
		engine:   engine,
		checkers: sigcheck.NewFactory(provider),
	}, nil
}

// ValidateTransaction validates tx. A transaction that is already in the store
// passes without running its scripts again.
func (v *Validator) ValidateTransaction(ctx context.Context, tx *model.Transaction) *model.ValidationResult {
	start := time.Now()

	defer func() {
		prometheusTransactionValidate.Observe(time.Since(start).Seconds())
	}()

	label, result := v.validateTransaction(ctx, tx)
	if !result.OK() {
		prometheusInvalidTransactions.WithLabelValues(label).Inc()
		v.logger.Debugf("[ValidateTransaction] transaction %s rejected: %s", tx.TxID(), result.Reason)
	}

	return result
}

func (v *Validator) validateTransaction(ctx context.Context, tx *model.Transaction) (string, *model.ValidationResult) {
	txID := tx.TxID()

	exists, err := v.store.GetTransactionExists(ctx, txID)
	if err != nil {
		v.logger.Errorf("[ValidateTransaction] failed to check whether %s exists: %v", txID, err)
		return reasonLabelStore, model.NewInvalidResult(ReasonStoreFailure)
	}

	if exists {
		return "", model.NewValidResult()
	}

	if len(tx.Inputs) == 0 {
		return reasonLabelMalformed, model.NewInvalidResult(ReasonNoInputs)
	}

	if len(tx.Outputs) == 0 {
		return reasonLabelMalformed, model.NewInvalidResult(ReasonNoOutputs)
	}

	parents, label, result := v.previousTransactions(ctx, tx)
	if result != nil {
		return label, result
	}

	if !v.verifyScripts(ctx, tx, parents) {
		return reasonLabelInvalidScript, model.NewInvalidResult(ReasonInvalidScript)
	}

	return "", model.NewValidResult()
}

// previousTransactions fetches every distinct transaction spent by tx once.
func (v *Validator) previousTransactions(ctx context.Context, tx *model.Transaction) (*swiss.Map[chainhash.Hash, *model.Transaction], string, *model.ValidationResult) {
	parents := swiss.NewMap[chainhash.Hash, *model.Transaction](uint32(len(tx.Inputs))) //nolint:gosec

	for _, input := range tx.Inputs {
		if input.IsCoinbase() || parents.Has(input.PreviousTxID) {
			continue
		}

		prevTxID := input.PreviousTxID

		parent, err := v.store.GetTransaction(ctx, &prevTxID)
		if err != nil {
			if errors.Is(err, errors.ErrTxNotFound) {
				return nil, reasonLabelMissingPrevTx, model.NewInvalidResult(ReasonMissingPreviousTx)
			}

			v.logger.Errorf("[ValidateTransaction] failed to get previous transaction %s: %v", prevTxID, err)

			return nil, reasonLabelStore, model.NewInvalidResult(ReasonStoreFailure)
		}

		parents.Put(prevTxID, parent)
	}

	return parents, "", nil
}

// verifyScripts runs the scripts of all inputs and reports whether every one of them passed.
func (v *Validator) verifyScripts(ctx context.Context, tx *model.Transaction, parents *swiss.Map[chainhash.Hash, *model.Transaction]) bool {
	start := time.Now()

	defer func() {
		prometheusTransactionValidateScripts.Observe(time.Since(start).Seconds())
	}()

	valid := atomic.NewBool(true)

	g := errgroup.Group{}
	util.SafeSetLimit(&g, util.ConcurrencyLimit(v.settings.Validator.ScriptConcurrency))

	for idx, input := range tx.Inputs {
		if input.IsCoinbase() {
			continue
		}

		g.Go(func() error {
			if err := v.verifyInput(ctx, tx, idx, parents); err != nil {
				prometheusInvalidScripts.Inc()
				v.logger.Debugf("[ValidateTransaction] input %d of %s failed: %v", idx, tx.TxID(), err)

				valid.CompareAndSwap(true, false)
			}

			return nil
		})
	}

	_ = g.Wait()

	return valid.Load()
}

func (v *Validator) verifyInput(ctx context.Context, tx *model.Transaction, idx int, parents *swiss.Map[chainhash.Hash, *model.Transaction]) error {
	if err := ctx.Err(); err != nil {
		return errors.NewContextCanceledError("validation cancelled", err)
	}

	input := tx.Inputs[idx]

	parent, ok := parents.Get(input.PreviousTxID)
	if !ok {
		return errors.NewTxNotFoundError("previous transaction %s not loaded", input.PreviousTxID)
	}

	if int(input.PreviousTxOutIndex) >= len(parent.Outputs) {
		return errors.NewTxInvalidError("output %d of %s does not exist", input.PreviousTxOutIndex, input.PreviousTxID)
	}

	locking := parent.Outputs[input.PreviousTxOutIndex].LockingScript

	res := v.engine.Verify(input.UnlockingScript, locking, v.checkers(tx, idx))
	if !res.Success {
		return errors.NewScriptInvalidError("%s", res.Reason())
	}

	return nil
}
