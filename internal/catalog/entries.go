package catalog

// entries is indexed by Kind.
var entries = [...]Entry{
	{
		Kind:        Reentrancy,
		Name:        "Reentrancy Vulnerability",
		Description: "Occurs when a contract function can be re-entered before the first call completes, allowing an attacker to manipulate state in unexpected ways. In Rust smart contracts, this typically happens through cross-program invocation (CPI) mechanisms.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot"},
		Example: `// Vulnerable contract that doesn't follow checks-effects-interactions pattern
pub fn withdraw(ctx: Context<Withdraw>, amount: u64) -> Result<()> {
    let user_balance = ctx.accounts.user_account.balance;

    if user_balance < amount {
        return Err(ErrorCode::InsufficientFunds.into());
    }

    // VULNERABILITY: Transfer happens before state update
    // This allows the recipient to call back into this function before
    // the balance is updated
    transfer_tokens(ctx.accounts.recipient.key, amount)?;

    // State is updated after the external call
    ctx.accounts.user_account.balance -= amount;

    Ok(())
}`,
		Detection: []string{
			"Look for state changes that occur after external calls or cross-program invocations",
			"Check if the contract uses a reentrancy guard",
			"Verify that the checks-effects-interactions pattern is followed",
			"Examine cross-program invocation permissions",
			"Check for proper handling of account validation",
		},
		Remediation: []string{
			"Follow the checks-effects-interactions pattern: validate conditions, update state, then make external calls",
			"Implement reentrancy guards using a mutex-like mechanism",
			"Use Rust's type system to prevent reentrancy by design",
			"Minimize cross-program invocations where possible",
			"Carefully consider which accounts have invocation privileges",
		},
	},
	{
		Kind:        Overflow,
		Name:        "Integer Overflow/Underflow Vulnerability",
		Description: "Occurs when arithmetic operations exceed the range of the data type, potentially leading to unexpected behavior. While Rust provides some built-in protection in debug mode, these might be disabled in release builds.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All Rust-based contracts"},
		Example: `// Vulnerable function that doesn't check for overflow
pub fn add_to_balance(ctx: Context<UpdateBalance>, amount: u64) -> Result<()> {
    // VULNERABILITY: No overflow check
    // If account.balance is close to u64::MAX, this will overflow
    ctx.accounts.user_account.balance += amount;

    Ok(())
}

// Vulnerable function with indirect overflow
pub fn process_large_transfer(ctx: Context<Transfer>, amount: u64) -> Result<()> {
    // VULNERABILITY: If amount + fee overflows, this check might be bypassed
    let fee = amount / 100; // 1% fee

    if amount + fee > ctx.accounts.payer.balance {
        return Err(ErrorCode::InsufficientFunds.into());
    }

    // Execution continues with insufficient balance
    ctx.accounts.payer.balance -= amount + fee;
    ctx.accounts.receiver.balance += amount;
    ctx.accounts.fee_collector.balance += fee;

    Ok(())
}`,
		Detection: []string{
			"Check arithmetic operations that could potentially overflow/underflow",
			"Look for unchecked arithmetic, especially with user-supplied inputs",
			"Verify that bounds checking is performed before critical operations",
			"Check if the code uses checked arithmetic functions",
			"Examine build configurations to ensure overflow checks aren't disabled in production",
		},
		Remediation: []string{
			"Use checked arithmetic operations (checked_add, checked_mul, etc.)",
			"Implement explicit bounds checking before performing arithmetic",
			"Consider using the num-traits crate for more robust handling",
			"Use the Saturating trait for operations that should saturate rather than overflow",
			"Keep panic-on-overflow enabled in release builds for critical code paths",
		},
	},
	{
		Kind:        UncheckedInputs,
		Name:        "Unchecked Inputs Vulnerability",
		Description: "Occurs when a smart contract fails to validate user-provided data, potentially leading to various attacks including injection, manipulation of contract state, or bypassing security controls.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All Rust-based contracts"},
		Example: `// Vulnerable function that doesn't validate inputs properly
pub fn process_transfer(ctx: Context<Transfer>, amount: u64) -> Result<()> {
    // VULNERABILITY: No validation on the amount
    // The amount could be 0, causing a no-op transfer
    // or extremely large, causing other issues

    ctx.accounts.source.balance -= amount;
    ctx.accounts.destination.balance += amount;

    Ok(())
}

// Vulnerable function that trusts deserialized data
pub fn process_transaction(ctx: Context<ProcessTx>, tx_data: Vec<u8>) -> Result<()> {
    // VULNERABILITY: Doesn't check bounds, patterns, or constraints
    // after deserialization
    let transaction: Transaction = borsh::BorshDeserialize::deserialize(&tx_data[..])
        .map_err(|_| ErrorCode::InvalidTransaction)?;

    // Uses transaction data without additional validation
    process_validated_transaction(ctx, transaction)
}`,
		Detection: []string{
			"Look for functions that receive external inputs without validation",
			"Check for missing boundary checks on numerical inputs",
			"Look for deserialization of complex structures without validation",
			"Verify validation logic on arguments that could affect program flow",
			"Examine type conversions that might truncate or alter values",
		},
		Remediation: []string{
			"Implement comprehensive input validation for all user-provided data",
			"Use Rust's type system to enforce constraints where possible",
			"Add explicit boundary checks for numerical values",
			"Validate deserialized data after deserialization",
			"Consider using libraries like 'validator' for complex validation logic",
		},
	},
	{
		Kind:        OracleManipulation,
		Name:        "Oracle Manipulation Vulnerability",
		Description: "Occurs when a smart contract relies on external data sources (oracles) that can be manipulated, leading to incorrect contract behavior, price manipulation, or other exploitative scenarios.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All DeFi platforms"},
		Example: `// Vulnerable function that relies on a single oracle
pub fn liquidate_position(ctx: Context<Liquidate>) -> Result<()> {
    // VULNERABILITY: Single oracle used for critical price data
    let token_price = ctx.accounts.price_oracle.get_price()?;

    let collateral_value = ctx.accounts.user_position.collateral_amount * token_price;
    let loan_value = ctx.accounts.user_position.loan_amount;

    // If collateral value falls below threshold, liquidate
    if collateral_value < loan_value * 110 / 100 {
        // Liquidation logic...
        liquidate_user_position(ctx)?;
    } else {
        return Err(ErrorCode::CannotLiquidate.into());
    }

    Ok(())
}

// Vulnerable function with time-based vulnerability
pub fn settle_options(ctx: Context<SettleOptions>) -> Result<()> {
    // VULNERABILITY: Uses the latest price without considering manipulation
    // An attacker could manipulate the price right before expiration
    let settlement_price = ctx.accounts.price_oracle.get_current_price()?;

    // Settle all options based on this price
    for option in ctx.accounts.option_positions.iter() {
        settle_option(option, settlement_price)?;
    }

    Ok(())
}`,
		Detection: []string{
			"Check if the contract relies on a single oracle for critical price data",
			"Examine if there are time-weighted average price (TWAP) mechanisms",
			"Verify if the contract has mechanisms to detect abnormal price movements",
			"Look for flash loan attack vectors related to price oracles",
			"Check for oracle freshness verification (staleness checks)",
		},
		Remediation: []string{
			"Use multiple independent oracles and aggregate their values (e.g., median)",
			"Implement time-weighted average prices (TWAP) to prevent manipulation",
			"Add price deviation checks to detect abnormal movements",
			"Include freshness checks to ensure oracle data is recent",
			"Consider using decentralized oracles like Chainlink where available",
		},
	},
	{
		Kind:        AccessControl,
		Name:        "Access Control Vulnerability",
		Description: "Occurs when a smart contract fails to properly restrict access to privileged functions, allowing unauthorized users to perform sensitive operations such as withdrawing funds, changing contract parameters, or affecting other users' assets.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All Rust-based contracts"},
		Example: `// Vulnerable function with missing access control
pub fn set_protocol_fee(ctx: Context<SetFee>, new_fee: u64) -> Result<()> {
    // VULNERABILITY: No access control check to restrict who can call this
    // Anyone can change the fee to any value

    ctx.accounts.protocol_config.fee_percentage = new_fee;

    Ok(())
}

// Vulnerable function with broken access control
pub fn update_user_account(ctx: Context<UpdateAccount>, data: UserAccountData) -> Result<()> {
    // VULNERABILITY: Incorrect access validation
    // The function only checks if the provided pubkey matches the expected owner
    // but doesn't verify that the signer actually signed the transaction

    if ctx.accounts.user_account.owner != ctx.accounts.authority.key() {
        return Err(ErrorCode::InvalidOwner.into());
    }

    // Update account with the new data
    ctx.accounts.user_account.update(data);

    Ok(())
}`,
		Detection: []string{
			"Identify privileged functions and verify appropriate access controls",
			"Check for missing signer verification in sensitive operations",
			"Review account validation logic, especially in functions that modify state",
			"Look for admin-only functions that lack proper authorization checks",
			"Verify that account ownership is properly enforced in cross-program operations",
		},
		Remediation: []string{
			"Implement proper signer verification for all sensitive operations",
			"Use a well-defined role-based access control (RBAC) system",
			"Ensure all admin functions check for the correct admin authority",
			"Validate account ownership before performing operations on behalf of users",
			"Consider time-locks for critical parameter changes",
		},
	},
	{
		Kind:        DenialOfService,
		Name:        "Denial of Service Vulnerability",
		Description: "Occurs when a smart contract can be manipulated to prevent legitimate users from accessing its functionality, either temporarily or permanently. This can happen through resource exhaustion, logic locks, or other means of disrupting normal contract operations.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All Rust-based contracts"},
		Example: `// Vulnerable function with unbounded iteration
pub fn process_all_accounts(ctx: Context<ProcessAccounts>) -> Result<()> {
    // VULNERABILITY: Unbounded iteration can lead to compute budget exhaustion
    // A malicious user could create many small accounts to force this function
    // to hit computational limits and fail

    for account in ctx.accounts.user_accounts.iter() {
        process_account(account)?;
    }

    Ok(())
}

// Vulnerable function with potential blocking
pub fn withdraw_all(ctx: Context<WithdrawAll>) -> Result<()> {
    // VULNERABILITY: This function requires all users to be processed
    // If one user's processing fails, all users are blocked

    let mut total_processed = 0;

    for user in ctx.accounts.users.iter() {
        // If this fails for any user, the entire transaction fails
        process_withdrawal(user)?;
        total_processed += 1;
    }

    // Update global state
    ctx.accounts.global_state.last_processed_count = total_processed;

    Ok(())
}`,
		Detection: []string{
			"Look for loops that iterate over user-controlled collections",
			"Check for functions that process multiple accounts in a single transaction",
			"Identify critical contract operations that could be blocked by a failed transaction",
			"Examine storage patterns that could allow unbounded growth",
			"Look for array operations without proper bounds checking",
		},
		Remediation: []string{
			"Implement paging for operations that iterate over large collections",
			"Add limits to the number of items processed in a single transaction",
			"Use a pull-payment pattern instead of pushing to many recipients",
			"Design fault-tolerant systems that can handle individual failures",
			"Add storage limits and garbage collection mechanisms",
		},
	},
	{
		Kind:        IllicitFee,
		Name:        "Illicit Fee Collection Vulnerability",
		Description: "Occurs when a smart contract allows unauthorized or excessive fees to be extracted from users, either through direct manipulation of fee parameters or through more subtle mechanisms that redirect value to unintended recipients.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All DeFi platforms"},
		Example: `// Vulnerable function with manipulable fee destination
pub fn swap_tokens(ctx: Context<SwapTokens>, amount_in: u64) -> Result<()> {
    // Calculate the output amount
    let fee_percentage = ctx.accounts.pool.fee_percentage;
    let fee_amount = amount_in * fee_percentage / 10000; // Fee in basis points

    // VULNERABILITY: The fee recipient can be changed by anyone
    // or is not properly validated against an authorized recipient
    let amount_out = calculate_swap_amount(amount_in - fee_amount);

    // Transfer tokens
    transfer_tokens_from(ctx.accounts.user, ctx.accounts.pool, amount_in)?;
    transfer_tokens_to(ctx.accounts.pool, ctx.accounts.user, amount_out)?;

    // Send fee to fee collector
    // VULNERABILITY: No validation of fee_collector account
    transfer_tokens_to(ctx.accounts.pool, ctx.accounts.fee_collector, fee_amount)?;

    Ok(())
}

// Vulnerable function with hidden fee
pub fn provide_liquidity(ctx: Context<ProvideLiquidity>, amount_a: u64, amount_b: u64) -> Result<()> {
    // VULNERABILITY: Hidden fee taken from the provided liquidity
    let actual_amount_a = amount_a * 9950 / 10000; // Hidden 0.5% fee
    let actual_amount_b = amount_b * 9950 / 10000; // Hidden 0.5% fee

    // The hidden fee is silently kept in the contract or sent elsewhere
    let fee_a = amount_a - actual_amount_a;
    let fee_b = amount_b - actual_amount_b;

    // Process the liquidity provision with the reduced amounts
    // but user thinks they're getting LP tokens for the full amount
    process_liquidity_provision(ctx, actual_amount_a, actual_amount_b)?;

    // Hidden fee transfer
    transfer_tokens_to(ctx.accounts.pool, ctx.accounts.hidden_fee_collector, fee_a)?;
    transfer_tokens_to(ctx.accounts.pool, ctx.accounts.hidden_fee_collector, fee_b)?;

    Ok(())
}`,
		Detection: []string{
			"Examine fee calculation logic for manipulation opportunities",
			"Check validation of fee recipient addresses",
			"Compare documented fees with actual implementation",
			"Trace token flows to identify potential fee leakage",
			"Look for fee parameters that can be changed without proper authorization",
		},
		Remediation: []string{
			"Implement strict validation of fee recipients",
			"Use access control for fee parameter changes",
			"Document all fees transparently in code and user interfaces",
			"Implement time-locks for fee parameter changes",
			"Use multi-signature or DAO governance for fee-related changes",
		},
	},
	{
		Kind:        FlashLoan,
		Name:        "Flash Loan Vulnerability",
		Description: "Occurs when a smart contract doesn't properly account for the possibility of atomic multi-step transactions enabled by flash loans. These attacks allow malicious actors to temporarily control large amounts of assets to manipulate markets, exploit pricing mechanisms, or drain funds from vulnerable contracts.",
		Platforms:   []string{"Solana", "NEAR", "All DeFi platforms"},
		Example: `// Vulnerable price calculation that can be manipulated by flash loans
pub fn calculate_collateral_value(ctx: Context<CalculateValue>) -> Result<u64> {
    // VULNERABILITY: Using a single DEX for price discovery
    // A flash loan could be used to manipulate this price temporarily
    let token_price = ctx.accounts.dex_market.get_current_price()?;

    let collateral_value = ctx.accounts.user_collateral.amount * token_price;

    Ok(collateral_value)
}

// Vulnerable liquidation function susceptible to flash loan attacks
pub fn liquidate_position(ctx: Context<Liquidate>) -> Result<()> {
    // Get the current value of collateral
    let collateral_token_price = ctx.accounts.token_oracle.get_price()?;
    let collateral_value = ctx.accounts.position.collateral_amount * collateral_token_price;

    // Check if position is undercollateralized
    let borrowed_value = ctx.accounts.position.borrowed_amount;

    // VULNERABILITY: Liquidation threshold can be manipulated by flash loans
    // An attacker could use a flash loan to manipulate the token price,
    // trigger liquidation, and then purchase the collateral at a discount
    if collateral_value < borrowed_value * 110 / 100 {
        // Position is undercollateralized, proceed with liquidation
        liquidate_and_distribute(ctx)?;
    } else {
        return Err(ErrorCode::PositionNotLiquidatable.into());
    }

    Ok(())
}`,
		Detection: []string{
			"Examine price oracle implementations for manipulation vulnerabilities",
			"Check for single-source price dependencies",
			"Review borrowing/lending protocols for proper collateralization checks",
			"Look for time-weighted average price (TWAP) implementation",
			"Analyze liquidation mechanisms for potential abuse",
		},
		Remediation: []string{
			"Use time-weighted average prices (TWAP) instead of spot prices",
			"Implement multiple price sources and use median or other robust aggregation",
			"Add circuit breakers for unusual price movements",
			"Consider transaction sequence analysis to detect flash loan attacks",
			"Implement rate limiting for large transactions",
		},
	},
	{
		Kind:        LogicError,
		Name:        "Logic Error Vulnerability",
		Description: "Occurs when a smart contract's business logic is flawed, causing unexpected behavior or allowing exploitation even when the code executes as written. These errors are often subtle and specific to the contract's intended functionality.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All Rust-based contracts"},
		Example: `// Vulnerable function with incorrect business logic
pub fn claim_rewards(ctx: Context<ClaimRewards>) -> Result<()> {
    let user = &ctx.accounts.user;
    let mut rewards_account = &mut ctx.accounts.rewards_account;

    // VULNERABILITY: Incorrect reward calculation
    // This only accounts for the current stake amount and time delta
    // but doesn't reset the last_claim_time
    let current_time = Clock::get()?.unix_timestamp as u64;
    let time_delta = current_time - user.last_claim_time;

    // Calculate rewards
    let reward_rate = 100; // Example: 100 tokens per day per staked token
    let reward_amount = user.staked_amount * reward_rate * time_delta / 86400;

    // Transfer rewards
    rewards_account.amount -= reward_amount;
    user.reward_balance += reward_amount;

    // VULNERABILITY: Missing update to last_claim_time
    // This allows the user to claim multiple times for the same period

    Ok(())
}

// Vulnerable function with state machine flaw
pub fn finalize_auction(ctx: Context<FinalizeAuction>) -> Result<()> {
    let auction = &mut ctx.accounts.auction;

    // VULNERABILITY: Insufficient state validation
    // Only checks if auction is active, but not if it has ended
    if auction.state != AuctionState::Active {
        return Err(ErrorCode::AuctionNotActive.into());
    }

    // Get the highest bidder
    let highest_bidder = auction.highest_bidder.ok_or(ErrorCode::NoBids)?;
    let highest_bid = auction.highest_bid;

    // Transfer assets
    transfer_asset(auction.asset_mint, auction.authority, highest_bidder, 1)?;
    transfer_tokens(auction.payment_mint, highest_bidder, auction.authority, highest_bid)?;

    // Update state
    auction.state = AuctionState::Ended;

    Ok(())
}`,
		Detection: []string{
			"Review business logic against functional requirements",
			"Model state transitions and verify correct handling of all states",
			"Check for missing or incorrect state updates",
			"Verify mathematical calculations, especially for financial operations",
			"Test with a variety of realistic and edge-case scenarios",
		},
		Remediation: []string{
			"Implement comprehensive state validation",
			"Use state machines with explicit transitions",
			"Add safeguards for critical calculations",
			"Validate business logic with formal verification where possible",
			"Extensively test all possible execution paths",
		},
	},
	{
		Kind:        RandomManipulation,
		Name:        "Random Number Manipulation Vulnerability",
		Description: "Occurs when a smart contract relies on sources of randomness that can be predicted or manipulated by attackers. This can lead to exploitation of games, lotteries, NFT minting, or any other functionality that requires unpredictable random values.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "All blockchain platforms"},
		Example: `// Vulnerable function with predictable randomness
pub fn select_winner(ctx: Context<SelectWinner>) -> Result<()> {
    let lottery = &mut ctx.accounts.lottery;

    // VULNERABILITY: Using block timestamp as randomness source
    let current_timestamp = Clock::get()?.unix_timestamp as u64;

    // VULNERABILITY: Predictable hash calculation
    let seed = lottery.ticket_count.to_le_bytes()
        .iter()
        .chain(current_timestamp.to_le_bytes().iter())
        .copied()
        .collect::<Vec<u8>>();

    let hash = hash::hash(&seed);

    // Select winner based on this hash
    let winner_index = (u64::from_le_bytes(hash.to_bytes()[0..8].try_into().unwrap())) % lottery.ticket_count;
    lottery.winner = lottery.participants[winner_index as usize];

    Ok(())
}

// Vulnerable function for NFT attribute generation
pub fn mint_random_nft(ctx: Context<MintNFT>) -> Result<()> {
    let mint_data = &mut ctx.accounts.mint_data;

    // VULNERABILITY: Using transaction signature as randomness source
    // This can be manipulated by miners/validators or predicted in advance
    let signature = ctx.accounts.authority.key().to_bytes();

    // Generate "random" attributes
    let rarity = (signature[0] % 100) + 1; // 1-100 rarity
    let strength = (signature[1] % 50) + 1; // 1-50 strength
    let agility = (signature[2] % 50) + 1; // 1-50 agility

    // Set NFT attributes
    mint_data.rarity = rarity;
    mint_data.strength = strength;
    mint_data.agility = agility;

    // Mint NFT
    // ...minting logic...

    Ok(())
}`,
		Detection: []string{
			"Identify all sources of randomness in the contract",
			"Check if randomness sources are predictable (block data, timestamps)",
			"Look for randomness derived from user-controllable inputs",
			"Verify if randomness can be manipulated by validators/miners",
			"Check if pseudo-random number generators (PRNGs) are properly seeded",
		},
		Remediation: []string{
			"Use a verifiable random function (VRF) service where available",
			"Implement commit-reveal schemes for randomness",
			"Combine multiple sources of entropy that cannot all be controlled",
			"Consider using off-chain oracles for randomness when appropriate",
			"For low-security needs, use cryptographic hashing of multiple inputs",
		},
	},
	{
		Kind:        SignatureVerification,
		Name:        "Signature Verification Bypass Vulnerability",
		Description: "Occurs when a smart contract fails to properly validate cryptographic signatures, allowing attackers to forge authorizations or bypass security checks. Common issues include improper verification logic, missing replay protection, and signature malleability problems.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "CosmWasm"},
		Example: `// Vulnerable signature verification that doesn't check all relevant data
pub fn process_authorized_transaction(
    ctx: Context<AuthorizedTransaction>,
    amount: u64,
    signature: [u8; 64],
) -> Result<()> {
    let signer_pubkey = ctx.accounts.authority.key();
    let message = amount.to_le_bytes();

    // VULNERABILITY: Only signing the amount, not including recipient or nonce
    // This allows signature reuse for different recipients
    if !verify_signature(&signer_pubkey, &message, &signature) {
        return Err(ErrorCode::InvalidSignature.into());
    }

    // Process the transfer...
    transfer_funds(ctx.accounts.from.key, ctx.accounts.to.key, amount)?;

    Ok(())
}`,
		Detection: []string{
			"Check that all relevant transaction data is included in the signed message (amount, recipient, timestamp/nonce)",
			"Verify that signatures cannot be reused across different contexts",
			"Ensure proper nonce handling to prevent replay attacks",
			"Check for signature malleability issues in the verification logic",
			"Validate that the signature verification is using appropriate cryptographic algorithms",
		},
		Remediation: []string{
			"Include all relevant transaction data in the signed message",
			"Implement proper nonce handling to prevent replay attacks",
			"Use established cryptographic libraries for signature verification",
			"Add transaction context to the signed message (program ID, instruction type)",
			"Implement domain separation in signatures to prevent cross-contract replay",
		},
	},
	{
		Kind:        AccountConfusion,
		Name:        "Account Confusion Vulnerability",
		Description: "Occurs when a smart contract fails to properly validate the identity or type of accounts it interacts with, allowing attackers to substitute unexpected accounts. This is particularly relevant on Solana where programs operate on accounts passed to them by the transaction.",
		Platforms:   []string{"Solana", "NEAR"},
		Example: `// Vulnerable account validation in a Solana program
pub fn process_instruction(
    program_id: &Pubkey,
    accounts: &[AccountInfo],
    instruction_data: &[u8],
) -> ProgramResult {
    let accounts_iter = &mut accounts.iter();

    let user_account = next_account_info(accounts_iter)?;
    let vault_account = next_account_info(accounts_iter)?;
    let token_program = next_account_info(accounts_iter)?;

    // VULNERABILITY: Not validating that vault_account is actually the intended vault
    // An attacker could substitute their own account here

    // Extract instruction data
    let amount = u64::from_le_bytes(instruction_data[0..8].try_into().unwrap());

    // Transfer tokens from vault to user
    let transfer_instruction = solana_program::instruction::Instruction {
        program_id: *token_program.key,
        accounts: vec![
            AccountMeta::new(*vault_account.key, false),
            AccountMeta::new(*user_account.key, false),
            AccountMeta::new_readonly(*program_id, true),
        ],
        data: /* token transfer instruction */,
    };

    invoke_signed(
        &transfer_instruction,
        &[vault_account.clone(), user_account.clone(), program_id.clone()],
        &[&[/* PDA seeds */]],
    )?;

    Ok(())
}`,
		Detection: []string{
			"Verify that all account ownership checks are implemented correctly",
			"Check that PDA validation includes bump seed verification",
			"Validate that expected program IDs are explicitly checked",
			"Ensure all account types are validated before use",
			"Verify that the correct account is used in each context",
		},
		Remediation: []string{
			"Always validate account ownership",
			"Properly derive and check PDAs with the correct seeds and bump",
			"Explicitly validate all program IDs for cross-program invocations",
			"Use explicit account type checking for each account",
			"Implement a comprehensive account validation framework",
		},
	},
	{
		Kind:        FrontRunning,
		Name:        "Front-Running Vulnerability",
		Description: "Occurs when the design of a smart contract allows observers to anticipate and exploit pending transactions by executing their own transactions first. This is especially problematic in decentralized exchanges, NFT minting, and other time-sensitive operations.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "CosmWasm"},
		Example: `// Vulnerable DEX swap function
pub fn swap(
    ctx: Context<Swap>,
    amount_in: u64,
    min_amount_out: u64,
) -> Result<()> {
    let token_a_reserves = ctx.accounts.pool.token_a_reserves;
    let token_b_reserves = ctx.accounts.pool.token_b_reserves;

    // VULNERABILITY: Price calculation is fully transparent and can be front-run
    // Anyone seeing this transaction can calculate the exact price impact
    // and run their own transaction first

    // Calculate output amount based on constant product formula
    let amount_out = calculate_output_amount(
        amount_in,
        token_a_reserves,
        token_b_reserves
    )?;

    // Check minimum output
    if amount_out < min_amount_out {
        return Err(ErrorCode::SlippageTooHigh.into());
    }

    // Execute the swap
    // ...transfer tokens...

    Ok(())
}`,
		Detection: []string{
			"Identify time-sensitive operations that affect pricing or value",
			"Check for lack of commit-reveal patterns where appropriate",
			"Evaluate the system's susceptibility to transaction ordering manipulation",
			"Review the protocol for MEV (Miner/Maximal Extractable Value) risks",
			"Analyze the transparency of pending transaction information",
		},
		Remediation: []string{
			"Implement commit-reveal schemes for sensitive operations",
			"Use batch processing to handle multiple transactions together",
			"Add time delays where appropriate to reduce the advantage of front-running",
			"Implement price oracles instead of relying solely on direct market prices",
			"Design interfaces that limit the information available to potential attackers",
		},
	},
	{
		Kind:        InadequateEvents,
		Name:        "Inadequate Event Emissions Vulnerability",
		Description: "Occurs when a smart contract fails to emit appropriate events for critical operations, making it difficult to track important state changes off-chain. This can lead to security issues as suspicious activities may go unnoticed without proper monitoring.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "CosmWasm"},
		Example: `// Vulnerable implementation with missing event emissions
pub fn update_admin(ctx: Context<UpdateAdmin>, new_admin: Pubkey) -> Result<()> {
    // VULNERABILITY: Critical operation without event emission
    // Changing the admin address is a security-critical operation
    // that should be logged with an event

    ctx.accounts.config.admin = new_admin;

    Ok(())
}

pub fn withdraw_funds(ctx: Context<WithdrawFunds>, amount: u64) -> Result<()> {
    // Check that the caller is the admin
    if ctx.accounts.authority.key() != ctx.accounts.config.admin {
        return Err(ErrorCode::Unauthorized.into());
    }

    // VULNERABILITY: No event emitted for fund withdrawal
    // This makes it difficult to track fund movements off-chain

    // Transfer funds
    let transfer_instruction = transfer(
        ctx.accounts.treasury.to_account_info().key,
        ctx.accounts.recipient.to_account_info().key,
        amount,
    );

    invoke_signed(
        &transfer_instruction,
        &[
            ctx.accounts.treasury.to_account_info(),
            ctx.accounts.recipient.to_account_info(),
        ],
        &[&[/* seeds */]],
    )?;

    Ok(())
}`,
		Detection: []string{
			"Identify all critical state changes and verify they emit appropriate events",
			"Check that sensitive operations like role changes emit detailed events",
			"Verify financial transactions (deposits, withdrawals, transfers) emit events",
			"Ensure events contain sufficient information for off-chain monitoring",
			"Check for consistent event emission patterns across similar operations",
		},
		Remediation: []string{
			"Emit events for all critical state changes",
			"Include detailed information in events (actors, amounts, timestamps)",
			"Implement a consistent event emission policy across the contract",
			"Use a standardized event structure for similar operations",
			"Ensure events capture both the previous and new state for important changes",
		},
	},
	{
		Kind:        StorageManagement,
		Name:        "Storage Management Vulnerability",
		Description: "Occurs when a smart contract improperly manages on-chain storage, leading to data corruption, inefficient resource usage, or unexpected behavior. This includes problems with serialization, account management, and memory safety issues specific to blockchain environments.",
		Platforms:   []string{"Solana", "NEAR", "Polkadot", "CosmWasm"},
		Example: `// Vulnerable Solana program with storage management issues
pub fn process_instruction(
    program_id: &Pubkey,
    accounts: &[AccountInfo],
    instruction_data: &[u8],
) -> ProgramResult {
    let accounts_iter = &mut accounts.iter();
    let account = next_account_info(accounts_iter)?;

    // VULNERABILITY: No size validation before deserializing
    // If the account data is smaller than expected, this will panic
    let mut data = account.try_borrow_mut_data()?;

    // VULNERABILITY: No ownership check
    // Should verify account.owner == program_id

    // Deserialize account data
    let mut state = State::try_from_slice(&data)?;

    // Process based on instruction
    let instruction = instruction_data[0];
    match instruction {
        0 => {
            // Increment counter
            state.counter += 1;
        }
        1 => {
            // VULNERABILITY: No bounds checking when extending storage
            // If we try to add more items than the account can hold, it will fail
            let new_value = instruction_data[1..].try_into().unwrap();
            state.values.push(new_value);
        }
        _ => return Err(ProgramError::InvalidInstructionData),
    }

    // VULNERABILITY: No error handling for serialization
    // If serialization fails, we may leave the account in a corrupted state
    state.serialize(&mut *data)?;

    Ok(())
}`,
		Detection: []string{
			"Check for proper account size validation before operations",
			"Verify account ownership checks are implemented correctly",
			"Look for proper error handling during serialization/deserialization",
			"Analyze storage patterns for efficiency and cost",
			"Check for bounds validation when extending dynamic data structures",
		},
		Remediation: []string{
			"Always validate account size before operations",
			"Implement comprehensive ownership checks",
			"Use robust error handling for all serialization/deserialization",
			"Design efficient storage patterns to minimize costs",
			"Implement proper bounds checking for dynamic data structures",
		},
	},
}
