package script

import (
	"bytes"
	"math/big"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/settings"
)

// SignatureChecker validates a signature against a public key for the transaction
// input being verified. The subscript is the part of the executing script after the
// last executed OP_CODESEPARATOR, with the signatures being checked removed.
type SignatureChecker interface {
	CheckSig(sig, pubKey, subscript []byte) bool
}

type noChecker struct{}

func (noChecker) CheckSig(_, _, _ []byte) bool {
	return false
}

// Options are the execution limits. Zero disables a limit.
type Options struct {
	MaxScriptSize         int
	MaxOps                int
	MaxStackSize          int
	MaxScriptNumLength    int
	MaxPubKeysPerMultisig int
}

func DefaultOptions() Options {
	return Options{
		MaxStackSize:          1000,
		MaxScriptNumLength:    10000,
		MaxPubKeysPerMultisig: 20,
	}
}

// OptionsFromPolicy maps the policy settings onto the execution limits.
func OptionsFromPolicy(policy *settings.PolicySettings) Options {
	if policy == nil {
		return DefaultOptions()
	}

	return Options{
		MaxScriptSize:         policy.MaxScriptSizePolicy,
		MaxOps:                policy.MaxOpsPerScriptPolicy,
		MaxStackSize:          policy.MaxStackSizePolicy,
		MaxScriptNumLength:    policy.MaxScriptNumLengthPolicy,
		MaxPubKeysPerMultisig: policy.MaxPubKeysPerMultisigPolicy,
	}
}

// Result is the outcome of executing a script. Err is set when execution stopped
// on an error, Success additionally requires a true item on top of the stack.
type Result struct {
	Success  bool
	Stack    [][]byte
	AltStack [][]byte
	Err      error
}

func (r *Result) Reason() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case !r.Success:
		return "script evaluated to false"
	default:
		return ""
	}
}

// Engine executes scripts. It holds no per execution state and can be shared
// between goroutines.
type Engine struct {
	provider hashing.Provider
	opts     Options
}

func NewEngine(provider hashing.Provider, opts Options) (*Engine, error) {
	if provider == nil {
		return nil, errors.NewConfigurationError("script engine needs a hash provider")
	}

	return &Engine{provider: provider, opts: opts}, nil
}

// Execute runs script starting from the given stacks. The input stacks are not modified.
func (e *Engine) Execute(script []byte, checker SignatureChecker, stack, altStack [][]byte) *Result {
	x := &execution{
		engine:  e,
		checker: checker,
		stack:   newStack(stack),
		alt:     newStack(altStack),
	}

	if x.checker == nil {
		x.checker = noChecker{}
	}

	err := x.run(script)

	res := &Result{
		Stack:    x.stack.snapshot(),
		AltStack: x.alt.snapshot(),
		Err:      err,
	}

	if err == nil && x.stack.depth() > 0 {
		top, _ := x.stack.peek(0)
		res.Success = AsBool(top)
	}

	return res
}

// Verify runs the unlocking script and then the locking script on the stacks it
// left behind. Both stages must succeed, so an unlocking script that fails or
// leaves an empty stack or a false top item fails the spend.
func (e *Engine) Verify(unlocking, locking []byte, checker SignatureChecker) *Result {
	res := e.Execute(unlocking, checker, nil, nil)
	if !res.Success {
		return res
	}

	return e.Execute(locking, checker, res.Stack, res.AltStack)
}

type execution struct {
	engine  *Engine
	checker SignatureChecker
	ops     []Operation
	stack   *stack
	alt     *stack
	cond    []bool
	lastSep int
	opCount int
}

func (x *execution) executing() bool {
	for _, c := range x.cond {
		if !c {
			return false
		}
	}

	return true
}

func (x *execution) run(script []byte) error {
	opts := x.engine.opts

	if opts.MaxScriptSize > 0 && len(script) > opts.MaxScriptSize {
		return errors.NewScriptLimitError("script size %d exceeds the limit of %d", len(script), opts.MaxScriptSize)
	}

	ops, err := Parse(script)
	if err != nil {
		return err
	}

	x.ops = ops

	for i, op := range ops {
		executing := x.executing()

		if !isPush(op.Opcode) {
			if err = x.countOps(1); err != nil {
				return err
			}
		}

		if IsDisabled(op.Opcode) || op.Opcode == OpVERIF || op.Opcode == OpVERNOTIF {
			return errors.NewScriptDisabledError("%s at position %d is disabled", OpcodeName(op.Opcode), i)
		}

		if !executing && !isConditional(op.Opcode) {
			continue
		}

		if err = x.step(i, op, executing); err != nil {
			return errors.NewScriptInvalidError("%s at position %d failed", OpcodeName(op.Opcode), i, err)
		}

		if opts.MaxStackSize > 0 && x.stack.depth()+x.alt.depth() > opts.MaxStackSize {
			return errors.NewScriptLimitError("stack size %d exceeds the limit of %d", x.stack.depth()+x.alt.depth(), opts.MaxStackSize)
		}
	}

	if len(x.cond) > 0 {
		return errors.NewScriptInvalidError("unbalanced conditional")
	}

	return nil
}

func (x *execution) countOps(n int) error {
	x.opCount += n

	if x.engine.opts.MaxOps > 0 && x.opCount > x.engine.opts.MaxOps {
		return errors.NewScriptLimitError("operation count %d exceeds the limit of %d", x.opCount, x.engine.opts.MaxOps)
	}

	return nil
}

func (x *execution) popNum() (*big.Int, error) {
	b, err := x.stack.pop()
	if err != nil {
		return nil, err
	}

	return DecodeNum(b, x.engine.opts.MaxScriptNumLength)
}

func (x *execution) popInt() (int, error) {
	n, err := x.popNum()
	if err != nil {
		return 0, err
	}

	if !n.IsInt64() || n.Int64() < 0 || n.Int64() > maxIndex {
		return 0, errors.NewScriptInvalidError("number %s out of range", n.String())
	}

	return int(n.Int64()), nil
}

// maxIndex bounds numbers used as counts or stack indexes.
const maxIndex = 1 << 20

func (x *execution) step(i int, op Operation, executing bool) error {
	if need, ok := opcodeArity[op.Opcode]; ok && executing && x.stack.depth() < need {
		return errors.NewScriptUnderflowError("%s needs %d items, stack depth %d", OpcodeName(op.Opcode), need, x.stack.depth())
	}

	switch {
	case op.Opcode <= OpPUSHDATA4:
		x.stack.push(append([]byte{}, op.Data...))
		return nil
	case op.Opcode == Op1NEGATE:
		x.stack.push(EncodeInt64(-1))
		return nil
	case op.Opcode >= Op1 && op.Opcode <= Op16:
		x.stack.push(EncodeInt64(int64(op.Opcode - Op1 + 1)))
		return nil
	case IsNop(op.Opcode):
		return nil
	case IsReserved(op.Opcode):
		return errors.NewScriptInvalidError("reserved opcode %s executed", OpcodeName(op.Opcode))
	}

	switch op.Opcode {
	case OpIF, OpNOTIF:
		value := false

		if executing {
			b, err := x.stack.pop()
			if err != nil {
				return err
			}

			value = AsBool(b)
			if op.Opcode == OpNOTIF {
				value = !value
			}
		}

		x.cond = append(x.cond, value)

	case OpELSE:
		if len(x.cond) == 0 {
			return errors.NewScriptInvalidError("OP_ELSE without OP_IF")
		}

		x.cond[len(x.cond)-1] = !x.cond[len(x.cond)-1]

	case OpENDIF:
		if len(x.cond) == 0 {
			return errors.NewScriptInvalidError("OP_ENDIF without OP_IF")
		}

		x.cond = x.cond[:len(x.cond)-1]

	case OpVERIFY:
		b, _ := x.stack.pop()
		if !AsBool(b) {
			return errors.NewScriptInvalidError("OP_VERIFY failed")
		}

	case OpRETURN:
		return errors.NewScriptInvalidError("OP_RETURN executed")

	case OpTOALTSTACK:
		b, _ := x.stack.pop()
		x.alt.push(b)

	case OpFROMALTSTACK:
		b, err := x.alt.pop()
		if err != nil {
			return err
		}

		x.stack.push(b)

	case Op2DROP:
		_, _ = x.stack.pop()
		_, _ = x.stack.pop()

	case Op2DUP:
		return x.stack.dupN(2)

	case Op3DUP:
		return x.stack.dupN(3)

	case Op2OVER:
		for j := 0; j < 2; j++ {
			b, _ := x.stack.peek(3)
			x.stack.push(b)
		}

	case Op2ROT:
		for j := 0; j < 2; j++ {
			b, _ := x.stack.remove(5)
			x.stack.push(b)
		}

	case Op2SWAP:
		for j := 0; j < 2; j++ {
			b, _ := x.stack.remove(3)
			x.stack.push(b)
		}

	case OpIFDUP:
		b, _ := x.stack.peek(0)
		if AsBool(b) {
			x.stack.push(b)
		}

	case OpDEPTH:
		x.stack.push(EncodeInt64(int64(x.stack.depth())))

	case OpDROP:
		_, _ = x.stack.pop()

	case OpDUP:
		return x.stack.dupN(1)

	case OpNIP:
		_, _ = x.stack.remove(1)

	case OpOVER:
		b, _ := x.stack.peek(1)
		x.stack.push(b)

	case OpPICK, OpROLL:
		n, err := x.popInt()
		if err != nil {
			return err
		}

		var b []byte

		if op.Opcode == OpPICK {
			b, err = x.stack.peek(n)
		} else {
			b, err = x.stack.remove(n)
		}

		if err != nil {
			return err
		}

		x.stack.push(b)

	case OpROT:
		b, _ := x.stack.remove(2)
		x.stack.push(b)

	case OpSWAP:
		b, _ := x.stack.remove(1)
		x.stack.push(b)

	case OpTUCK:
		b, _ := x.stack.peek(0)
		return x.stack.insert(2, b)

	case OpSIZE:
		b, _ := x.stack.peek(0)
		x.stack.push(EncodeInt64(int64(len(b))))

	case OpEQUAL, OpEQUALVERIFY:
		a, _ := x.stack.pop()
		b, _ := x.stack.pop()
		equal := bytes.Equal(a, b)

		if op.Opcode == OpEQUALVERIFY {
			if !equal {
				return errors.NewScriptInvalidError("OP_EQUALVERIFY failed")
			}

			return nil
		}

		x.stack.push(fromBool(equal))

	case Op1ADD, Op1SUB, OpNEGATE, OpABS, OpNOT, Op0NOTEQUAL:
		return x.unaryNum(op.Opcode)

	case OpADD, OpSUB, OpBOOLAND, OpBOOLOR, OpNUMEQUAL, OpNUMEQUALVERIFY, OpNUMNOTEQUAL,
		OpLESSTHAN, OpGREATERTHAN, OpLESSTHANOREQUAL, OpGREATERTHANOREQUAL, OpMIN, OpMAX:
		return x.binaryNum(op.Opcode)

	case OpWITHIN:
		upper, err := x.popNum()
		if err != nil {
			return err
		}

		lower, err := x.popNum()
		if err != nil {
			return err
		}

		n, err := x.popNum()
		if err != nil {
			return err
		}

		x.stack.push(fromBool(lower.Cmp(n) <= 0 && n.Cmp(upper) < 0))

	case OpRIPEMD160, OpSHA1, OpSHA256, OpHASH160, OpHASH256:
		return x.hash(op.Opcode)

	case OpCODESEPARATOR:
		x.lastSep = i + 1

	case OpCHECKSIG, OpCHECKSIGVERIFY:
		pubKey, _ := x.stack.pop()
		sig, _ := x.stack.pop()

		ok := x.checker.CheckSig(sig, pubKey, x.subscript([][]byte{sig}))

		if op.Opcode == OpCHECKSIGVERIFY {
			if !ok {
				return errors.NewScriptInvalidError("OP_CHECKSIGVERIFY failed")
			}

			return nil
		}

		x.stack.push(fromBool(ok))

	case OpCHECKMULTISIG, OpCHECKMULTISIGVERIFY:
		return x.checkMultisig(op.Opcode == OpCHECKMULTISIGVERIFY)

	default:
		return errors.NewScriptInvalidError("unknown opcode 0x%02x", op.Opcode)
	}

	return nil
}

func (x *execution) unaryNum(op byte) error {
	n, err := x.popNum()
	if err != nil {
		return err
	}

	r := new(big.Int)

	switch op {
	case Op1ADD:
		r.Add(n, big.NewInt(1))
	case Op1SUB:
		r.Sub(n, big.NewInt(1))
	case OpNEGATE:
		r.Neg(n)
	case OpABS:
		r.Abs(n)
	case OpNOT:
		if n.Sign() == 0 {
			r.SetInt64(1)
		}
	case Op0NOTEQUAL:
		if n.Sign() != 0 {
			r.SetInt64(1)
		}
	}

	x.stack.push(EncodeNum(r))

	return nil
}

func (x *execution) binaryNum(op byte) error {
	b, err := x.popNum()
	if err != nil {
		return err
	}

	a, err := x.popNum()
	if err != nil {
		return err
	}

	cmp := a.Cmp(b)

	var r []byte

	switch op {
	case OpADD:
		r = EncodeNum(new(big.Int).Add(a, b))
	case OpSUB:
		r = EncodeNum(new(big.Int).Sub(a, b))
	case OpBOOLAND:
		r = fromBool(a.Sign() != 0 && b.Sign() != 0)
	case OpBOOLOR:
		r = fromBool(a.Sign() != 0 || b.Sign() != 0)
	case OpNUMEQUAL:
		r = fromBool(cmp == 0)
	case OpNUMEQUALVERIFY:
		if cmp != 0 {
			return errors.NewScriptInvalidError("OP_NUMEQUALVERIFY failed")
		}

		return nil
	case OpNUMNOTEQUAL:
		r = fromBool(cmp != 0)
	case OpLESSTHAN:
		r = fromBool(cmp < 0)
	case OpGREATERTHAN:
		r = fromBool(cmp > 0)
	case OpLESSTHANOREQUAL:
		r = fromBool(cmp <= 0)
	case OpGREATERTHANOREQUAL:
		r = fromBool(cmp >= 0)
	case OpMIN:
		if cmp <= 0 {
			r = EncodeNum(a)
		} else {
			r = EncodeNum(b)
		}
	case OpMAX:
		if cmp >= 0 {
			r = EncodeNum(a)
		} else {
			r = EncodeNum(b)
		}
	}

	x.stack.push(r)

	return nil
}

var hashOps = map[byte]hashing.Algorithm{
	OpRIPEMD160: hashing.RIPEMD160,
	OpSHA1:      hashing.SHA1,
	OpSHA256:    hashing.SHA256,
	OpHASH160:   hashing.Hash160,
	OpHASH256:   hashing.DoubleSHA256,
}

func (x *execution) hash(op byte) error {
	b, err := x.stack.pop()
	if err != nil {
		return err
	}

	sum, err := hashing.Sum(x.engine.provider, hashOps[op], b)
	if err != nil {
		return err
	}

	x.stack.push(sum)

	return nil
}

// subscript returns the script after the last executed OP_CODESEPARATOR with
// every push of one of the given signatures removed.
func (x *execution) subscript(sigs [][]byte) []byte {
	ops := make([]Operation, 0, len(x.ops)-x.lastSep)

outer:
	for _, op := range x.ops[x.lastSep:] {
		if op.Opcode > Op0 && op.Opcode <= OpPUSHDATA4 {
			for _, sig := range sigs {
				if len(sig) > 0 && bytes.Equal(op.Data, sig) {
					continue outer
				}
			}
		}

		ops = append(ops, op)
	}

	return Unparse(ops)
}

// checkMultisig consumes <dummy> <sig>... <m> <pubkey>... <n>. The dummy item is
// popped and ignored, a quirk every node has to reproduce.
func (x *execution) checkMultisig(verify bool) error {
	nKeys, err := x.popInt()
	if err != nil {
		return err
	}

	if limit := x.engine.opts.MaxPubKeysPerMultisig; limit > 0 && nKeys > limit {
		return errors.NewScriptLimitError("%d public keys exceeds the limit of %d", nKeys, limit)
	}

	if err = x.countOps(nKeys); err != nil {
		return err
	}

	pubKeys := make([][]byte, nKeys)
	for i := range pubKeys {
		if pubKeys[i], err = x.stack.pop(); err != nil {
			return err
		}
	}

	nSigs, err := x.popInt()
	if err != nil {
		return err
	}

	if nSigs > nKeys {
		return errors.NewScriptInvalidError("%d signatures for %d public keys", nSigs, nKeys)
	}

	sigs := make([][]byte, nSigs)
	for i := range sigs {
		if sigs[i], err = x.stack.pop(); err != nil {
			return err
		}
	}

	if _, err = x.stack.pop(); err != nil {
		return err
	}

	subscript := x.subscript(sigs)

	success := true
	keyIdx, sigIdx := 0, 0
	remainingKeys, remainingSigs := nKeys, nSigs

	for success && remainingSigs > 0 {
		if x.checker.CheckSig(sigs[sigIdx], pubKeys[keyIdx], subscript) {
			sigIdx++
			remainingSigs--
		}

		keyIdx++
		remainingKeys--

		if remainingSigs > remainingKeys {
			success = false
		}
	}

	if verify {
		if !success {
			return errors.NewScriptInvalidError("OP_CHECKMULTISIGVERIFY failed")
		}

		return nil
	}

	x.stack.push(fromBool(success))

	return nil
}
