package protocol

// Input/output script-type values carried in TxInputType.ScriptType and
// TxOutputType.ScriptType. Numbering follows the upstream MessageType
// enum's InputScriptType/OutputScriptType declarations.
const (
	InputScriptSpendAddress uint32 = 0

	OutputScriptPayToAddress    uint32 = 0
	OutputScriptPayToScriptHash uint32 = 1
)
